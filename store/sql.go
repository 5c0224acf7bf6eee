package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"unfair_dao/sdk"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRow is one account in the accounts table.
type accountRow struct {
	Address   string `gorm:"primaryKey;size:128"`
	Data      []byte
	UpdatedAt time.Time
}

func (accountRow) TableName() string {
	return "accounts"
}

// SQL keeps accounts in a relational table through gorm. Every commit runs in
// one DB transaction; rows that were read are locked with FOR UPDATE and keys
// that must be new are inserted without upsert so the primary key catches races.
type SQL struct {
	db *gorm.DB
}

var _ sdk.State = &SQL{}

// OpenSQL connects with the mysql or postgres driver and migrates the table.
func OpenSQL(driver string, dsn string) (*SQL, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", driver, err)
	}
	return NewSQL(db)
}

func NewSQL(db *gorm.DB) (*SQL, error) {
	if err := db.AutoMigrate(&accountRow{}); err != nil {
		return nil, err
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var row accountRow
	err := s.db.WithContext(ctx).Where("address = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if row.Data == nil {
		return []byte{}, nil
	}
	return row.Data, nil
}

func (s *SQL) Commit(ctx context.Context, batch *sdk.Batch) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range batch.ExpectKeys() {
			var rows []accountRow
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("address = ?", key).
				Limit(1).
				Find(&rows).Error; err != nil {
				return err
			}
			var current []byte
			if len(rows) > 0 {
				current = rows[0].Data
				if current == nil {
					current = []byte{}
				}
			}
			if err := batch.Check(key, current); err != nil {
				return err
			}
		}
		for key := range batch.Deletes {
			if err := tx.Where("address = ?", key).Delete(&accountRow{}).Error; err != nil {
				return err
			}
		}
		now := time.Now().UTC()
		for key, val := range batch.Writes {
			row := accountRow{Address: key, Data: val, UpdatedAt: now}
			if batch.ExpectsAbsent(key) {
				if err := tx.Create(&row).Error; err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						return batch.ExistsError(key)
					}
					return err
				}
				continue
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "address"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return err
}

func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
