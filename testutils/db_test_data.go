package testutils

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/mww/club_ladder/containers"
	"github.com/mww/club_ladder/db"
	"github.com/mww/club_ladder/model"
)

// The time the mock clock starts at.
var StartTime = time.Date(2024, time.May, 4, 18, 30, 0, 0, time.UTC)

var (
	Alice = &model.User{ID: uuid.NewString(), Username: "alice", DisplayName: "Alice"}
	Bob   = &model.User{ID: uuid.NewString(), Username: "bob", DisplayName: "Bob"}
	Carol = &model.User{ID: uuid.NewString(), Username: "carol", DisplayName: "Carol"}
	Dave  = &model.User{ID: uuid.NewString(), Username: "dave", DisplayName: "Dave"}
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.NewMock()
	clock.Set(StartTime)

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestUsers(db); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

func InsertTestUsers(db db.DB) error {
	users := []*model.User{
		Alice,
		Bob,
		Carol,
		Dave,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, u := range users {
		err := db.AddUser(ctx, u)
		if err != nil {
			return err
		}
	}

	return nil
}
