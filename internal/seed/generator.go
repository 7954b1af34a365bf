package seed

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/eventdesk/internal/domain/model"
)

var (
	firstNames = []string{"Ada", "Grace", "Linus", "Margaret", "Ken", "Barbara", "Dennis", "Frances", "Alan", "Radia"}
	lastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Hamilton", "Thompson", "Liskov", "Ritchie", "Allen", "Turing", "Perlman"}
)

// randomInt returns a value in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// generateContacts creates n contacts with unique e-mail addresses.
func generateContacts(n int) []model.NewContact {
	out := make([]model.NewContact, n)
	for i := range out {
		out[i] = generateContact(uuid.NewString())
	}
	return out
}

// generateContact builds one contact whose e-mail embeds tag.
func generateContact(tag string) model.NewContact {
	first := firstNames[randomInt(len(firstNames))]
	last := lastNames[randomInt(len(lastNames))]
	return model.NewContact{
		Name:  first + " " + last,
		Email: fmt.Sprintf("%s.%s+%s@example.com", strings.ToLower(first), strings.ToLower(last), tag),
		Phone: fmt.Sprintf("+1-555-%03d-%04d", randomInt(1000), randomInt(10000)),
	}
}
