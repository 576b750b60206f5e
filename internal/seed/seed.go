package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/repositories"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/auth"
	"github.com/hostelease/hostelease/internal/pkg/logger"
)

const defaultPassword = "password123"

// CreateDefaultData seeds an admin, a warden and a starter block of rooms
// so a fresh install is usable immediately. Safe to call on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	userRepo := repositories.NewUserRepository(dbPool)
	roomRepo := repositories.NewRoomRepository(dbPool, userRepo)

	var finalErr error

	if err := seedStaffUser(ctx, userRepo, "Hostel Admin", "admin@hostelease.com", models.RoleAdmin); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedStaffUser(ctx, userRepo, "Hostel Warden", "warden@hostelease.com", models.RoleWarden); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedRooms(ctx, roomRepo); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedStaffUser(ctx context.Context, userRepo *repositories.UserRepository, name, email string, role models.RoleType) error {
	exists, err := userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing %s account: %w", role, err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	_, err = userRepo.CreateUser(ctx, &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
	})
	if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		return fmt.Errorf("failed to create default %s account: %w", role, err)
	}

	logger.Info().Str("email", email).Str("role", string(role)).Msg("Seeded default account")
	return nil
}

// seedRooms creates a starter block of rooms on the first two floors.
// Skipped entirely once any room exists so manual layouts survive restarts.
func seedRooms(ctx context.Context, roomRepo *repositories.RoomRepository) error {
	count, err := roomRepo.CountRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}
	if count > 0 {
		return nil
	}

	var finalErr error
	created := 0
	for floor := 1; floor <= 2; floor++ {
		for n := 1; n <= 10; n++ {
			room := &models.Room{
				RoomNumber: fmt.Sprintf("R%d%02d", floor, n),
				Floor:      floor,
				Capacity:   4,
				Status:     models.RoomAvailable,
			}
			if _, err := roomRepo.CreateRoom(ctx, room); err != nil {
				if errors.Is(err, apperrors.ErrRoomNumberExists) {
					continue
				}
				logger.Error().Err(err).Str("roomNumber", room.RoomNumber).Msg("Error seeding room")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			created++
		}
	}

	logger.Info().Int("count", created).Msg("Seeded starter rooms")
	return finalErr
}
