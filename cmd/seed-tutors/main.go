package main

import (
	"context"
	"flag"
	"log"

	"github.com/museconnect/tutor-admin-api/internal/models"
	"github.com/museconnect/tutor-admin-api/internal/repository"
	"github.com/museconnect/tutor-admin-api/pkg/config"
	"github.com/museconnect/tutor-admin-api/pkg/database"
	"github.com/museconnect/tutor-admin-api/pkg/logger"

	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

var fixtures = []models.Tutor{
	{Name: "Amelia Hart", Email: "amelia.hart@museconnect.example", Phone: strPtr("07700 900101"), Instruments: models.InstrumentList{"Piano", "Keyboard"}, Postcode: strPtr("SW9 8DJ"), Active: true},
	{Name: "Ben Okafor", Email: "ben.okafor@museconnect.example", Phone: strPtr("07700 900102"), Instruments: models.InstrumentList{"Guitar", "Bass Guitar"}, Postcode: strPtr("SE15 4QL"), Active: true},
	{Name: "Carmen Diaz", Email: "carmen.diaz@museconnect.example", Phone: strPtr("07700 900103"), Instruments: models.InstrumentList{"Violin", "Viola"}, Postcode: strPtr("N1 9AG"), Active: true},
	{Name: "Dev Sharma", Email: "dev.sharma@museconnect.example", Phone: strPtr("07700 900104"), Instruments: models.InstrumentList{"Drums"}, Postcode: strPtr("E8 2NP"), Active: true},
	{Name: "Elena Vasquez", Email: "elena.vasquez@museconnect.example", Phone: strPtr("07700 900105"), Instruments: models.InstrumentList{"Vocals", "Piano"}, Postcode: strPtr("W12 7RJ"), Active: true},
	{Name: "Felix Nowak", Email: "felix.nowak@museconnect.example", Phone: strPtr("07700 900106"), Instruments: models.InstrumentList{"Saxophone", "Clarinet", "Flute"}, Postcode: strPtr("NW5 1TL"), Active: true},
	{Name: "Grace Lindqvist", Email: "grace.lindqvist@museconnect.example", Phone: strPtr("07700 900107"), Instruments: models.InstrumentList{"Cello"}, Postcode: strPtr("SW4 6DB"), Active: false},
}

func main() {
	wipe := flag.Bool("wipe", false, "delete all tutors before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	repo := repository.NewTutorRepository(db)
	ctx := context.Background()

	if *wipe {
		removed, err := repo.DeleteAll(ctx)
		if err != nil {
			logr.Sugar().Fatalw("failed to wipe tutors", "error", err)
		}
		logr.Info("tutor roster wiped", zap.Int64("removed", removed))
	}

	for i := range fixtures {
		tutor := fixtures[i]
		if err := repo.Create(ctx, &tutor); err != nil {
			logr.Error("failed to seed tutor", zap.String("email", tutor.Email), zap.Error(err))
			continue
		}
		logr.Info("seeded tutor", zap.String("id", tutor.ID), zap.String("name", tutor.Name))
	}

	logr.Info("tutor seeding complete", zap.Int("count", len(fixtures)))
}
