package testutils

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/agroth3/nfl-playoff-picks/containers"
	"github.com/agroth3/nfl-playoff-picks/db"
	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/itbasis/go-clock"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the password of every user inserted by InsertTestUsers.
const TestPassword = "password1234"

var (
	TylerLockett = &model.User{
		Email:     "tyler.lockett@example.com",
		FirstName: "Tyler",
		LastName:  "Lockett",
	}
	JalenHurts = &model.User{
		Email:     "jalen.hurts@example.com",
		FirstName: "Jalen",
		LastName:  "Hurts",
	}
	CeeDeeLamb = &model.User{
		Email:     "ceedee.lamb@example.com",
		FirstName: "CeeDee",
		LastName:  "Lamb",
	}
	TJHockenson = &model.User{
		Email:     "tj.hockenson@example.com",
		FirstName: "T.J.",
		LastName:  "Hockenson",
	}
	BreeceHall = &model.User{
		Email:     "breece.hall@example.com",
		FirstName: "Breece",
		LastName:  "Hall",
	}

	leagueCtr = int32(0)
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

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

// InsertTestUsers saves the package level test users, setting their IDs.
func InsertTestUsers(db db.DB) error {
	users := []*model.User{
		TylerLockett,
		JalenHurts,
		CeeDeeLamb,
		TJHockenson,
		BreeceHall,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, u := range users {
		u.PasswordHash = string(hash)
		if err := db.AddUser(ctx, u); err != nil {
			return err
		}
	}

	return nil
}

// NewTestLeague creates an unlocked league owned by owner with one team per
// abbreviation. Teams are ranked in the order given. Any extra members are
// added to the league.
func (tdb *TestDB) NewTestLeague(owner *model.User, abbreviations []string, members ...*model.User) (*model.League, []model.Team, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		return nil, nil, err
	}

	l := &model.League{
		Name:         fmt.Sprintf("Test League %d", atomic.AddInt32(&leagueCtr, 1)),
		OwnerID:      owner.ID,
		PasswordHash: string(hash),
	}
	if err := tdb.DB.AddLeague(ctx, l); err != nil {
		return nil, nil, err
	}

	for _, m := range members {
		if err := tdb.DB.AddLeagueMember(ctx, l.ID, m.ID); err != nil {
			return nil, nil, err
		}
	}

	teams := make([]model.Team, 0, len(abbreviations))
	update := &model.LeagueUpdate{}
	for i, a := range abbreviations {
		conf := model.CONF_NFC
		if i%2 == 1 {
			conf = model.CONF_AFC
		}
		t := model.Team{
			LeagueID:     l.ID,
			Name:         a + " team",
			Abbreviation: a,
			Conference:   conf,
		}
		if err := tdb.DB.AddTeam(ctx, &t); err != nil {
			return nil, nil, err
		}
		t.Rank = i + 1
		teams = append(teams, t)
		update.Teams = append(update.Teams, model.TeamUpdate{ID: t.ID, Name: t.Name, Abbreviation: a, Rank: t.Rank})
	}

	if err := tdb.DB.UpdateLeague(ctx, l.ID, update); err != nil {
		return nil, nil, err
	}

	return l, teams, nil
}
