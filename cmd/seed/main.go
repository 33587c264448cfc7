package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/application/usecase"
	"github.com/franquianet/portal/domain/entity"
	"github.com/franquianet/portal/infrastructure/adapter/postgres"
	"github.com/franquianet/portal/infrastructure/service/logger"
	"github.com/franquianet/portal/infrastructure/service/password"
)

type seedStore struct {
	name, city, state, address string
	done                       []string
}

type seedSupplier struct {
	name, document, email, phone string
	stores                       []seedStore
}

var network = []seedSupplier{
	{
		name: "Sabor Brasil Alimentos", document: "11.222.333/0001-81", email: "contato@saborbrasil.com.br", phone: "(11) 4002-8922",
		stores: []seedStore{
			{name: "Loja Paulista", city: "São Paulo", state: "SP", address: "Av. Paulista, 1000",
				done: []string{"furniture", "pos", "network", "signage", "training"}},
			{name: "Loja Pinheiros", city: "São Paulo", state: "SP", address: "Rua dos Pinheiros, 250",
				done: []string{"furniture", "pos"}},
		},
	},
	{
		name: "Café do Sul Distribuidora", document: "45.987.654/0001-10", email: "rede@cafedosul.com.br",
		stores: []seedStore{
			{name: "Loja Moinhos", city: "Porto Alegre", state: "RS", address: "Rua Padre Chagas, 80"},
		},
	},
}

func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	if err := seed(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func seed(ctx context.Context, db *sql.DB) error {
	nop := logger.NewNopLogger()
	suppliers := usecase.NewSupplierUseCase(postgres.NewSupplierRepositoryAdapter(db), nil, nop)
	stores := usecase.NewStoreUseCase(postgres.NewStoreRepositoryAdapter(db), postgres.NewSupplierRepositoryAdapter(db), nil, nop)
	tickets := usecase.NewTicketUseCase(postgres.NewTicketRepositoryAdapter(db), postgres.NewStoreRepositoryAdapter(db), nil, nop)

	adminID, err := seedUser(ctx, db)
	if err != nil {
		return err
	}

	for _, s := range network {
		supplier, err := suppliers.Create(ctx, inbound.CreateSupplierRequest{
			Name: s.name, Document: s.document, Email: s.email, Phone: s.phone,
		})
		if errors.Is(err, outbound.ErrSupplierAlreadyExists) {
			fmt.Printf("Supplier %s already present, skipping\n", s.name)
			continue
		}
		if err != nil {
			return fmt.Errorf("supplier %s: %w", s.name, err)
		}
		fmt.Printf("Seeded supplier: %s id=%s\n", supplier.Name, supplier.ID)

		for _, st := range s.stores {
			store, err := stores.Create(ctx, inbound.CreateStoreRequest{
				SupplierID: supplier.ID, Name: st.name, City: st.city, State: st.state, Address: st.address,
			})
			if err != nil {
				return fmt.Errorf("store %s: %w", st.name, err)
			}
			for _, key := range st.done {
				if _, err := stores.SetChecklistItem(ctx, store.ID, key, inbound.UpdateChecklistItemRequest{Done: true}); err != nil {
					return fmt.Errorf("store %s checklist %s: %w", st.name, key, err)
				}
			}

			ticket, err := tickets.Create(ctx, inbound.CreateTicketRequest{
				StoreID:     store.ID,
				Title:       "Conferir instalação do PDV",
				Description: "Validar impressora fiscal e leitor de código de barras.",
				CreatedBy:   adminID,
			})
			if err != nil {
				return fmt.Errorf("ticket for %s: %w", st.name, err)
			}
			if len(st.done) == len(entity.DefaultChecklist()) {
				if _, err := tickets.Resolve(ctx, ticket.ID); err != nil {
					return fmt.Errorf("resolve ticket for %s: %w", st.name, err)
				}
			}
			fmt.Printf("  Seeded store: %s id=%s\n", store.Name, store.ID)
		}
	}
	return nil
}

// seedUser upserts the demo login from SEED_USER_* and returns its id.
func seedUser(ctx context.Context, db *sql.DB) (string, error) {
	email := getenvDefault("SEED_USER_EMAIL", "admin@franquianet.com.br")
	userPassword := getenvDefault("SEED_USER_PASSWORD", "Admin1234!")
	role := getenvDefault("SEED_USER_ROLE", entity.RoleAdmin)
	if !entity.ValidRole(role) {
		return "", fmt.Errorf("invalid SEED_USER_ROLE %q", role)
	}

	hash, err := password.NewBcryptPasswordService(10).HashPassword(userPassword)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	users := postgres.NewUserRepositoryAdapter(db)
	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Password = hash
		existing.Role = role
		existing.UpdatedAt = time.Now()
		if err := users.Update(ctx, existing); err != nil {
			return "", fmt.Errorf("update seed user: %w", err)
		}
		fmt.Printf("Updated user: email=%s role=%s id=%s\n", email, role, existing.ID)
		return existing.ID, nil
	case errors.Is(err, outbound.ErrUserNotFound):
		user := entity.NewUser(uuid.New().String(), "Administrador", email, hash, role)
		if err := users.Create(ctx, user); err != nil {
			return "", fmt.Errorf("create seed user: %w", err)
		}
		fmt.Printf("Seeded user: email=%s password=%s role=%s id=%s\n", email, userPassword, role, user.ID)
		return user.ID, nil
	default:
		return "", fmt.Errorf("find seed user: %w", err)
	}
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
