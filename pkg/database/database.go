package database

import (
	"fmt"
	"log"
	"pilates_diario_backend/internal/config"
	"pilates_diario_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Exercise{},
		&model.Completion{},
		&model.Product{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed a starter catalog so the daily rotation has something to
	// serve on a fresh install.
	var count int64
	db.Model(&model.Exercise{}).Count(&count)
	if count == 0 {
		defaultExercises := []model.Exercise{
			{Title: "Respiração e Postura", Description: "Aquecimento com foco na respiração lateral e alinhamento da coluna.", Difficulty: "iniciante", DayOrder: 1, DurationSeconds: 30, Active: true},
			{Title: "Hundred", Description: "Exercício clássico de aquecimento para ativar o powerhouse.", Difficulty: "iniciante", DayOrder: 2, DurationSeconds: 30, Active: true},
			{Title: "Roll Up", Description: "Articulação da coluna vértebra por vértebra.", Difficulty: "intermediário", DayOrder: 3, DurationSeconds: 30, Active: true},
			{Title: "Ponte de Ombros", Description: "Fortalecimento de glúteos e mobilidade da coluna.", Difficulty: "iniciante", DayOrder: 4, DurationSeconds: 30, Active: true},
			{Title: "Prancha com Apoio", Description: "Estabilização do core com apoio dos antebraços.", Difficulty: "intermediário", DayOrder: 5, DurationSeconds: 30, Active: true},
		}
		for _, e := range defaultExercises {
			db.Create(&e)
		}
	}

	return db, nil
}
