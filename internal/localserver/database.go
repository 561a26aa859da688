package localserver

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stulang/stulang/internal/infrastructure/config"
)

//go:embed seed/vocabulary.json
var seedFS embed.FS

// OpenDatabase connects, migrates, and seeds the local store.
func OpenDatabase(cfg config.LocalServerConfig, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&Vocabulary{}, &Account{}, &Cycle{}, &CycleWord{}, &LearnedWord{}, &ChatLog{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := seedVocabulary(db, log); err != nil {
		return nil, err
	}
	if err := seedAccount(db, cfg, log); err != nil {
		return nil, err
	}
	return db, nil
}

func seedVocabulary(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&Vocabulary{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count vocabulary: %w", err)
	}
	if count > 0 {
		return nil
	}

	raw, err := seedFS.ReadFile("seed/vocabulary.json")
	if err != nil {
		return fmt.Errorf("read seed corpus: %w", err)
	}
	var words []Vocabulary
	if err := json.Unmarshal(raw, &words); err != nil {
		return fmt.Errorf("parse seed corpus: %w", err)
	}
	if err := db.Create(&words).Error; err != nil {
		return fmt.Errorf("seed vocabulary: %w", err)
	}
	log.WithField("words", len(words)).Info("seeded vocabulary corpus")
	return nil
}

func seedAccount(db *gorm.DB, cfg config.LocalServerConfig, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&Account{}).Where("username = ?", cfg.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account := Account{
		Username:     cfg.Username,
		PasswordHash: string(hash),
		Email:        cfg.Username + "@stulang.local",
		Role:         "user",
	}
	if err := db.Create(&account).Error; err != nil {
		return fmt.Errorf("seed account: %w", err)
	}
	log.WithField("username", cfg.Username).Info("seeded dev account")
	return nil
}
