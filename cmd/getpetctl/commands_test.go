package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/choices"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/router"
)

func memoryConnect(store *memory.Store) connectFunc {
	return func(ctx context.Context) (*app, func(), error) {
		return newApp(router.MemoryRepos(store)), nil, nil
	}
}

func noMigrate(string) (uint, error) { return 0, errors.New("unexpected migrate") }

func run(t *testing.T, connect connectFunc, migrate migrateFunc, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(connect, migrate)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestShelterCreateAndStaffAdd(t *testing.T) {
	store := memory.NewStore()
	store.SeedDefaultRegions()
	ctx := context.Background()
	u, _ := store.Users().Create(ctx, users.User{Username: "uid-1"})
	connect := memoryConnect(store)

	out, err := run(t, connect, noMigrate, "shelter", "create", "--name", "Lesė", "--region", "Vilnius", "--published")
	if err != nil || !strings.Contains(out, "shelter 1 created") {
		t.Fatalf("create shelter: out=%q err=%v", out, err)
	}
	if _, err := run(t, connect, noMigrate, "shelter", "create", "--name", "X", "--region", "atlantis"); err == nil {
		t.Fatalf("expected unknown region error")
	}

	out, err = run(t, connect, noMigrate, "staff", "add", "--shelter", "1", "--user", "uid-1")
	if err != nil || !strings.Contains(out, "added to shelter 1") {
		t.Fatalf("staff add: out=%q err=%v", out, err)
	}
	out, _ = run(t, connect, noMigrate, "staff", "add", "--shelter", "1", "--user", "uid-1")
	if !strings.Contains(out, "already staff") {
		t.Fatalf("second add should be a no-op, out=%q", out)
	}

	list, _ := store.Shelters().ListByStaff(ctx, u.ID)
	if len(list) != 1 || !list[0].IsPublished {
		t.Fatalf("unexpected shelters %+v", list)
	}
}

func TestPromoteAndConnectSuperusers(t *testing.T) {
	store := memory.NewStore()
	store.SeedDefaultRegions()
	ctx := context.Background()
	admin, _ := store.Users().Create(ctx, users.User{Username: "admin"})
	connect := memoryConnect(store)

	_, _ = run(t, connect, noMigrate, "shelter", "create", "--name", "A", "--region", "vilnius")
	_, _ = run(t, connect, noMigrate, "shelter", "create", "--name", "B", "--region", "kaunas")

	if out, err := run(t, connect, noMigrate, "users", "promote", "admin"); err != nil || !strings.Contains(out, "superuser=true") {
		t.Fatalf("promote: out=%q err=%v", out, err)
	}
	out, err := run(t, connect, noMigrate, "connect-superusers")
	if err != nil || !strings.Contains(out, "2 staff links created") {
		t.Fatalf("connect-superusers: out=%q err=%v", out, err)
	}
	list, _ := store.Shelters().ListByStaff(ctx, admin.ID)
	if len(list) != 2 {
		t.Fatalf("admin should staff both shelters, got %d", len(list))
	}
}

func TestExportChoices(t *testing.T) {
	store := memory.NewStore()
	store.SeedDefaultRegions()
	ctx := context.Background()
	u, _ := store.Users().Create(ctx, users.User{Username: "uid-1", DateJoined: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)})
	_, _ = run(t, memoryConnect(store), noMigrate, "shelter", "create", "--name", "A", "--region", "vilnius")
	dog, _ := store.Pets().Create(ctx, pets.Pet{ShelterID: 1, Name: "Rex", Details: pets.DogDetails{}})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, _ = store.Choices().Upsert(ctx, choices.Choice{UserID: u.ID, PetID: dog.ID, IsFavorite: true, CreatedAt: now, UpdatedAt: now})

	out, err := run(t, memoryConnect(store), noMigrate, "export-choices")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out, "pet_id,pet_created_at,user_id") || !strings.Contains(out, ",true,2024-05-01T12:00:00Z") {
		t.Fatalf("unexpected csv %q", out)
	}
}

func TestMigrate(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://getpet@localhost/getpet")
	var got string
	out, err := run(t, nil, func(dsn string) (uint, error) {
		got = dsn
		return 1, nil
	}, "migrate")
	if err != nil || got != "postgres://getpet@localhost/getpet" || !strings.Contains(out, "version 1") {
		t.Fatalf("migrate: out=%q dsn=%q err=%v", out, got, err)
	}
}
