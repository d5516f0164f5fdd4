package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bpr-presale.backend/internal/config"
	"bpr-presale.backend/internal/domain/entities"
	"bpr-presale.backend/internal/infrastructure/mail"
	"bpr-presale.backend/internal/infrastructure/repositories"
	"bpr-presale.backend/internal/usecases"
	"bpr-presale.backend/pkg/logger"
)

// sendmail dispatches notification emails from the command line, for
// operators who prefer a terminal over the admin panel.
//
//	sendmail -type first-contact -ids <uuid>,<uuid>
//	sendmail -type reminder -all

var openDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
	})
}

func main() {
	emailType := flag.String("type", "", "email type: first-contact or reminder")
	rawIDs := flag.String("ids", "", "comma-separated lead IDs")
	all := flag.Bool("all", false, "send to every registered lead")
	flag.Parse()

	if err := run(*emailType, *rawIDs, *all); err != nil {
		log.Fatal(err)
	}
}

func run(emailType, rawIDs string, all bool) error {
	if !entities.EmailType(emailType).IsValid() {
		return fmt.Errorf("invalid -type %q (allowed: first-contact, reminder)", emailType)
	}
	if all == (rawIDs != "") {
		return errors.New("provide exactly one of -ids or -all")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()
	logger.Init(cfg.Server.Env)

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := repositories.NewRegistrationRepository(db)
	renderer := mail.NewTemplateRenderer(cfg.Mail.TemplateDir)
	sender := mail.NewSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password,
		renderer, cfg.Mail.FromName, cfg.Mail.FromAddress)
	notifications := usecases.NewNotificationUsecase(repo, sender, cfg.Mail.BatchDelay)

	ctx := context.Background()

	ids, err := resolveIDs(ctx, repo.List, rawIDs, all)
	if err != nil {
		return err
	}

	result, err := notifications.SendBatch(ctx, ids, entities.EmailType(emailType))
	if err != nil {
		return err
	}

	for _, s := range result.Successful {
		fmt.Printf("sent    %s %s\n", s.Email, s.MessageID)
	}
	for _, f := range result.Failed {
		fmt.Printf("failed  %s: %s\n", f.Email, f.Error)
	}
	fmt.Printf("done: %d sent, %d failed\n", len(result.Successful), len(result.Failed))

	if len(result.Failed) > 0 {
		return errors.New("some emails failed to send")
	}
	return nil
}

type listFunc func(ctx context.Context) ([]*entities.Registration, error)

func resolveIDs(ctx context.Context, list listFunc, rawIDs string, all bool) ([]uuid.UUID, error) {
	if all {
		leads, err := list(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, 0, len(leads))
		for _, lead := range leads {
			ids = append(ids, lead.ID)
		}
		return ids, nil
	}

	parts := strings.Split(rawIDs, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid lead ID %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
