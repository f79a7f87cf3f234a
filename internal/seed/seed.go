package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/abimath/internal/app/models"
	appRepos "github.com/yigit/abimath/internal/app/repositories"
)

type fixtureStudent struct {
	name  string
	class string
}

var (
	fixtureClasses  = []string{"Test Class1 Unallocated", "Test Class2"}
	fixtureStudents = []fixtureStudent{
		{name: "Test Student1 Class1", class: "Test Class1 Unallocated"},
		{name: "Test Student2 Class1", class: "Test Class1 Unallocated"},
		{name: "Test Student3 Class2", class: "Test Class2"},
	}
)

// CreateDefaultData inserts the fixture classes and students that do not
// exist yet. It runs in one unit of work, so a failure leaves nothing behind.
func CreateDefaultData(ctx context.Context, uow appRepos.UnitOfWork, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Classes/Students)...")

	created := 0
	err := uow.Do(ctx, func(ctx context.Context, tx appRepos.Tx) error {
		classIDs := make(map[string]int64, len(fixtureClasses))
		for _, name := range fixtureClasses {
			id, isNew, err := ensureClass(ctx, tx.Classes(), name)
			if err != nil {
				return err
			}
			classIDs[name] = id
			if isNew {
				created++
			}
		}

		for _, s := range fixtureStudents {
			classID := classIDs[s.class]
			_, err := tx.Students().FindByClassAndName(ctx, classID, s.name)
			if err == nil {
				continue
			}
			if !errors.Is(err, appRepos.ErrNotFound) {
				return fmt.Errorf("error looking up student %q: %w", s.name, err)
			}
			student := &appModels.Student{ClassID: classID, Name: s.name, ResultSet: appModels.NewZeroResultSet()}
			if _, err := tx.Students().Create(ctx, student); err != nil {
				return fmt.Errorf("error creating student %q: %w", s.name, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data")
		return err
	}

	lgr.Info().Int("created", created).Msg("Default data ready")
	return nil
}

func ensureClass(ctx context.Context, classes appRepos.ClassStore, name string) (int64, bool, error) {
	existing, err := classes.GetByName(ctx, name)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, appRepos.ErrNotFound) {
		return 0, false, fmt.Errorf("error looking up class %q: %w", name, err)
	}

	id, err := classes.Create(ctx, &appModels.Class{Name: name, ResultSet: appModels.NewZeroResultSet()})
	if err != nil {
		return 0, false, fmt.Errorf("error creating class %q: %w", name, err)
	}
	return id, true, nil
}
