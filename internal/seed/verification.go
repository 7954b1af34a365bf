package seed

import (
	"context"
	"fmt"

	"github.com/okian/eventdesk/internal/domain/model"
	"github.com/okian/eventdesk/pkg/logger"
)

// verifyContacts checks that every created contact is listed with the
// submitted fields and records the number of missing or mismatched ones.
func verifyContacts(ctx context.Context, stored []created, listed []model.Contact, stats *Stats) error {
	byID := make(map[string]model.Contact, len(listed))
	for _, c := range listed {
		byID[c.ID] = c
	}

	missing := 0
	for _, s := range stored {
		got, ok := byID[s.contact.ID]
		if !ok || got.Name != s.input.Name || got.Email != s.input.Email || got.Phone != s.input.Phone {
			missing++
		}
	}

	stats.Listed = len(listed)
	stats.Missing = missing

	if err := verifyOrdering(listed); err != nil {
		logger.Named("seed").Warn(ctx, "list ordering warning", logger.Error(err))
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d created contacts are missing from the list", missing, len(stored))
	}
	logger.Named("seed").Info(ctx, "contacts verified", logger.Int("listed", len(listed)), logger.Int("created", len(stored)))
	return nil
}

// verifyOrdering checks the list is sorted by creation time.
func verifyOrdering(listed []model.Contact) error {
	for i := 1; i < len(listed); i++ {
		if listed[i].CreatedAt.Before(listed[i-1].CreatedAt) {
			return fmt.Errorf("contact %d was created before contact %d", i, i-1)
		}
	}
	return nil
}
