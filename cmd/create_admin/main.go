package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/application/usecase/user_management"
	"github.com/franquianet/portal/domain/entity"
	"github.com/franquianet/portal/infrastructure/adapter/postgres"
	"github.com/franquianet/portal/infrastructure/config"
	"github.com/franquianet/portal/infrastructure/service/password"
)

// Usage: create_admin [email] [password] [name]
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	req := inbound.CreateUserRequest{
		Email:    "admin@franquianet.com.br",
		Password: "admin123",
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
	}
	if len(os.Args) > 1 {
		req.Email = os.Args[1]
	}
	if len(os.Args) > 2 {
		req.Password = os.Args[2]
	}
	if len(os.Args) > 3 {
		req.Name = os.Args[3]
	}

	users := user_management.NewUserManagementUseCase(
		postgres.NewUserRepositoryAdapter(db),
		postgres.NewRefreshTokenRepositoryAdapter(db, cfg.RefreshTokenSalt),
		password.NewBcryptPasswordService(10),
	)

	admin, err := users.CreateUser(ctx, req)
	if errors.Is(err, outbound.ErrUserAlreadyExists) {
		log.Fatalf("A user with email %s already exists", req.Email)
	}
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Println("Admin user created successfully")
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Name:  %s\n", admin.Name)
	fmt.Printf("Role:  %s\n", admin.Role)
	fmt.Printf("ID:    %s\n", admin.ID)
}
