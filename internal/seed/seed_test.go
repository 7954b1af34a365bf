package seed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/eventdesk/internal/domain/model"
	"github.com/okian/eventdesk/pkg/logger"
)

func init() {
	_ = logger.Init()
}

// fakeAPI is an in-memory contacts API.
type fakeAPI struct {
	mu         sync.Mutex
	contacts   map[string]model.Contact
	failCreate bool
	unhealthy  bool
	dropList   bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{contacts: make(map[string]model.Contact)}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == healthPath:
		if f.unhealthy {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.URL.Path == contactsPath && r.Method == http.MethodPost:
		if f.failCreate {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var in model.NewContact
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c := model.Contact{ID: uuid.NewString(), Name: in.Name, Email: in.Email, Phone: in.Phone, CreatedAt: time.Now()}
		f.contacts[c.ID] = c
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(c)
	case r.URL.Path == contactsPath && r.Method == http.MethodGet:
		out := make([]model.Contact, 0, len(f.contacts))
		if !f.dropList {
			for _, c := range f.contacts {
				out = append(out, c)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
		_ = json.NewEncoder(w).Encode(out)
	case r.URL.Path == contactsPath && r.Method == http.MethodDelete:
		delete(f.contacts, r.URL.Query().Get("id"))
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Contact deleted"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.contacts)
}

func TestRun(t *testing.T) {
	Convey("Given a running contacts API", t, func() {
		api := newFakeAPI()
		srv := httptest.NewServer(api)
		defer srv.Close()

		cfg := &Config{BaseURL: srv.URL, Contacts: 25, Workers: 4, Timeout: 2 * time.Second}
		ctx := context.Background()

		Convey("When seeding without cleanup", func() {
			stats, err := Run(ctx, cfg)

			Convey("Then every contact should be created and listed", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 25)
				So(stats.Created, ShouldEqual, 25)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Listed, ShouldEqual, 25)
				So(stats.Missing, ShouldEqual, 0)
				So(stats.Deleted, ShouldEqual, 0)
				So(api.count(), ShouldEqual, 25)
			})
		})

		Convey("When seeding with cleanup", func() {
			cfg.Cleanup = true
			stats, err := Run(ctx, cfg)

			Convey("Then the created contacts should be removed again", func() {
				So(err, ShouldBeNil)
				So(stats.Deleted, ShouldEqual, 25)
				So(api.count(), ShouldEqual, 0)
			})
		})

		Convey("When the service is unhealthy", func() {
			api.mu.Lock()
			api.unhealthy = true
			api.mu.Unlock()
			_, err := Run(ctx, cfg)

			Convey("Then the run should stop before creating anything", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "health check failed")
				So(api.count(), ShouldEqual, 0)
			})
		})

		Convey("When every create fails", func() {
			api.mu.Lock()
			api.failCreate = true
			api.mu.Unlock()
			stats, err := Run(ctx, cfg)

			Convey("Then the failures should be reported", func() {
				So(err, ShouldNotBeNil)
				So(stats.Created, ShouldEqual, 0)
				So(stats.Failed, ShouldEqual, 25)
			})
		})

		Convey("When the list omits created contacts", func() {
			api.mu.Lock()
			api.dropList = true
			api.mu.Unlock()
			stats, err := Run(ctx, cfg)

			Convey("Then verification should fail", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "verification failed")
				So(stats.Missing, ShouldEqual, 25)
			})
		})
	})

	Convey("Given an unusable configuration", t, func() {
		_, err := Run(context.Background(), &Config{BaseURL: "http://localhost", Contacts: 0, Workers: 1})

		Convey("Then Run should reject it", func() {
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestGenerateContacts(t *testing.T) {
	Convey("Given generated contacts", t, func() {
		contacts := generateContacts(50)

		Convey("Then every contact should be valid with a unique e-mail", func() {
			So(contacts, ShouldHaveLength, 50)
			seen := make(map[string]bool)
			for _, c := range contacts {
				So(c.Validate(), ShouldBeNil)
				So(seen[c.Email], ShouldBeFalse)
				seen[c.Email] = true
			}
		})
	})
}

func TestVerifyOrdering(t *testing.T) {
	Convey("Given listed contacts", t, func() {
		now := time.Now()

		Convey("Then ascending creation times should pass", func() {
			So(verifyOrdering([]model.Contact{{CreatedAt: now}, {CreatedAt: now.Add(time.Second)}}), ShouldBeNil)
		})

		Convey("And descending creation times should be reported", func() {
			So(verifyOrdering([]model.Contact{{CreatedAt: now.Add(time.Second)}, {CreatedAt: now}}), ShouldNotBeNil)
		})
	})
}
