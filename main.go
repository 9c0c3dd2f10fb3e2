package main

import (
	"log"

	"atix-backend/cmd/api"
	authdelivery "atix-backend/internal/auth/delivery"
	authdomain "atix-backend/internal/auth/domain"
	authrepo "atix-backend/internal/auth/repository"
	authusecase "atix-backend/internal/auth/usecase"
	emaildelivery "atix-backend/internal/email/delivery"
	emaildomain "atix-backend/internal/email/domain"
	emailrepo "atix-backend/internal/email/repository"
	emailusecase "atix-backend/internal/email/usecase"
	"atix-backend/pkg/ai"
	"atix-backend/pkg/config"
	"atix-backend/pkg/database"
	"atix-backend/pkg/gmail"
)

func main() {
	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatalf("[Database] failed to connect: %v", err)
	}

	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&emaildomain.Email{},
	); err != nil {
		log.Fatalf("[Database] failed to migrate: %v", err)
	}

	userRepo := authrepo.NewUserRepository(db)
	emailRepo := emailrepo.NewEmailRepository(db)

	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)
	classifier := ai.NewClassifier(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIModel:   cfg.OpenAIModel,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})

	authUsecase := authusecase.NewAuthUsecase(userRepo, cfg)
	emailUsecase := emailusecase.NewEmailUsecase(emailRepo, userRepo, gmailService, classifier)

	authHandler := authdelivery.NewAuthHandler(authUsecase)
	emailHandler := emaildelivery.NewEmailHandler(emailUsecase)

	handler := api.NewHandler(authUsecase, authHandler, emailHandler)

	log.Printf("[Server] listening on :%s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatalf("[Server] failed to start: %v", err)
	}
}
