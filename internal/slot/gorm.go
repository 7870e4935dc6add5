package slot

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipebox/internal/model"
)

// SQL stores the blob as a row of the storage_slots table. It works with
// any gorm dialect; the table must exist (see database.RunMigrations).
type SQL struct {
	name  string
	db    *gorm.DB
	close func() error
}

// NewSQL creates a slot on db. closeFn, if not nil, is called by Close.
func NewSQL(name string, db *gorm.DB, closeFn func() error) *SQL {
	return &SQL{name: name, db: db, close: closeFn}
}

func (s *SQL) Name() string { return s.name }

func (s *SQL) Load(ctx context.Context) ([]byte, error) {
	var rec model.SlotRecord
	err := s.db.WithContext(ctx).First(&rec, "name = ?", s.name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", s.name, err)
	}
	return rec.Data, nil
}

func (s *SQL) Save(ctx context.Context, data []byte) error {
	rec := model.SlotRecord{Name: s.name, Data: data}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save slot %s: %w", s.name, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Delete(&model.SlotRecord{}, "name = ?", s.name).Error; err != nil {
		return fmt.Errorf("delete slot %s: %w", s.name, err)
	}
	return nil
}

func (s *SQL) Close() error {
	if s.close != nil {
		return s.close()
	}
	return nil
}
