package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agroth3/nfl-playoff-picks/db"
	"github.com/agroth3/nfl-playoff-picks/limiter"
	"github.com/agroth3/nfl-playoff-picks/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrLeagueLocked       = errors.New("league is locked")
	ErrNotLeagueAdmin     = errors.New("only the league admin can do that")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many attempts, try again later")
)

const minPasswordLength = 8

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Creates a new account. Returns a *ValidationError keyed by form field if
	// any input is missing or invalid.
	SignUp(ctx context.Context, firstName, lastName, email, password string) (*model.User, error)
	// Returns ErrInvalidCredentials if the email is unknown or the password does not match.
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id, firstName, lastName string) (*model.User, error)

	CreateLeague(ctx context.Context, ownerID, name, password string) (*model.League, error)
	// Returns db.ErrLeagueNotFound unless userID is a member of the league.
	GetLeague(ctx context.Context, leagueID int32, userID string) (*model.League, error)
	ListLeagues(ctx context.Context, userID string) ([]model.League, error)
	GetLeagueByHash(ctx context.Context, hash string) (*model.League, error)
	// Adds userID to the league shared as hash. clientKey identifies the caller
	// for rate limiting, usually the remote address.
	JoinLeague(ctx context.Context, userID, hash, password, clientKey string) (*model.League, error)
	// Owner only. Either every part of the update is saved or none of it is.
	UpdateLeague(ctx context.Context, leagueID int32, userID string, update *model.LeagueUpdate) error
	DeleteLeague(ctx context.Context, leagueID int32, userID string) error
	ListMembers(ctx context.Context, leagueID int32) ([]model.LeagueMember, error)
	RemoveMember(ctx context.Context, leagueID int32, actingUserID, memberID string) error

	// Teams sorted by ascending rank, then name.
	ListTeams(ctx context.Context, leagueID int32) ([]model.Team, error)
	AddTeam(ctx context.Context, leagueID int32, userID string, t *model.Team) error

	GetPicks(ctx context.Context, leagueID int32, userID string) ([]model.Pick, error)
	// Validates the whole batch before anything is written. On failure a
	// *ValidationError keyed by team id is returned and no picks are saved.
	ValidateAndUpsertPicks(ctx context.Context, leagueID int32, userID string, batch []model.PickEntry) error
	ComputeLeaderboard(ctx context.Context, leagueID int32) (*model.Leaderboard, error)
	// The member's own picks, most points first.
	GetMyPicks(ctx context.Context, leagueID int32, userID string) ([]model.MemberPick, error)
}

type controller struct {
	db       db.DB
	limiter  limiter.Limiter
	logger   *zap.Logger
	hashCost int
}

func New(db db.DB, limiter limiter.Limiter, logger *zap.Logger) (C, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	if limiter == nil {
		return nil, errors.New("limiter is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &controller{
		db:       db,
		limiter:  limiter,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
	return c, nil
}

// ValidationError holds user facing messages keyed by the form field (or team
// id for pick submissions) they belong to.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// errOrNil avoids returning a typed nil inside an error interface.
func (e *ValidationError) errOrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (c *controller) hashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), c.hashCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(h), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func validatePassword(fields map[string]string, password string) {
	switch {
	case password == "":
		fields["password"] = "Password is required"
	case len(password) < minPasswordLength:
		fields["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}
}
