package main

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/apex/log"
	uuid "github.com/satori/go.uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Game game.
type Game struct {
	gorm.Model

	GameID uuid.UUID `gorm:"<-:create;type:varchar;size:36;uniqueIndex"`
	White  string
	Black  string
	Board  grid `gorm:"type:varchar;size:128;not null"`
	Turns  int
	End    bool
	Error  string
	Plays  []Play `gorm:"foreignKey:GameID;references:GameID"`
}

// Play play.
type Play struct {
	gorm.Model

	GameID  uuid.UUID `gorm:"type:varchar;size:36;index"`
	Turn    int
	PieceID uint8
	Side    string
	Move    string
	Score   float64
}

type store struct {
	db *gorm.DB
}

func openStore(dbname string) (*store, error) {
	connStr := strings.Join([]string{"dbname", dbname}, "=")

	database, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		QueryFields: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.AutoMigrate(&Game{}, &Play{}); err != nil {
		return nil, err
	}
	log.WithField("dbname", dbname).Info("store opened")
	return &store{db: database}, nil
}

func (s *store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *store) createGame(id uuid.UUID, agents [2]string, g grid) error {
	return s.db.Create(&Game{GameID: id, White: agents[white], Black: agents[black], Board: g}).Error
}

func (s *store) recordPlay(id uuid.UUID, g grid, p play, score float64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		record := Play{
			GameID:  id,
			Turn:    p.Turn,
			PieceID: uint8(p.ID),
			Side:    p.Side.String(),
			Move:    p.String(),
			Score:   score,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Model(&Game{}).Where(Game{GameID: id}).Updates(map[string]interface{}{"board": g, "turns": p.Turn}).Error
	})
}

func (s *store) endGame(id uuid.UUID, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return s.db.Model(&Game{}).Where(Game{GameID: id}).Updates(map[string]interface{}{"end": true, "error": message}).Error
}

func (s *store) getGame(id uuid.UUID) (*Game, error) {
	var game Game
	if err := s.db.Preload(clause.Associations).Where(Game{GameID: id}).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func idleError(message string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	if errors.Is(err, http.ErrServerClosed) {
		return
	}
	if errors.Is(err, io.EOF) {
		return
	}
	log.WithField("type", reflect.TypeOf(err)).WithError(err).Error(message)
	panic(err)
}
