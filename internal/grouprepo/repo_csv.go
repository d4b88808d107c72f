package grouprepo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/pkg/csvstore"
	"github.com/splitpot/splitpot/pkg/errorspkg"
)

// RepoCSV facilitates group repository layer logic on a CSV table.
// Record shape: {group_name, members}, members comma-joined.
type RepoCSV struct {
	table *csvstore.Table[domain.Group]
}

// NewRepoCSV returns group RepoCSV backed by groups.csv in dir.
func NewRepoCSV(dir string) *RepoCSV {
	codec := csvstore.Codec[domain.Group]{
		Header: []string{"group_name", "members"},
		Key: func(g domain.Group) string {
			return g.Name
		},
		Encode: func(g domain.Group) []string {
			return []string{g.Name, strings.Join(g.Members, ",")}
		},
		Decode: func(row []string) (domain.Group, error) {
			if len(row) != 2 {
				return domain.Group{}, fmt.Errorf("group row has %d fields, want 2", len(row))
			}

			g := domain.Group{Name: row[0]}
			if row[1] != "" {
				g.Members = strings.Split(row[1], ",")
			}

			return g, nil
		},
	}

	return &RepoCSV{table: csvstore.New(filepath.Join(dir, "groups.csv"), codec)}
}

// Create creates the group with its fixed member list and returns it.
func (r *RepoCSV) Create(ctx context.Context, arg domain.Group) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	_, found, err := r.table.Get(arg.Name)
	if err != nil {
		l.Error().Err(err).Send()

		return domain.Group{}, errorspkg.ErrStorage
	}

	if found {
		return domain.Group{}, domain.ErrDuplicateGroup
	}

	if err := r.table.Append(arg); err != nil {
		l.Error().Err(err).Send()

		return domain.Group{}, errorspkg.ErrStorage
	}

	return arg, nil
}

// Get returns the group with the given name, members in creation order.
func (r *RepoCSV) Get(ctx context.Context, name string) (domain.Group, error) {
	l := zerolog.Ctx(ctx)

	g, found, err := r.table.Get(name)
	if err != nil {
		l.Error().Err(err).Send()

		return domain.Group{}, errorspkg.ErrStorage
	}

	if !found {
		return domain.Group{}, domain.ErrGroupNotFound
	}

	return g, nil
}
