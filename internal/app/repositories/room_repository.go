package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/db"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/dberrors"
	"github.com/hostelease/hostelease/internal/pkg/logger"
)

// RoomRepository handles room database operations
type RoomRepository struct {
	db    *pgxpool.Pool
	sb    squirrel.StatementBuilderType
	users *UserRepository
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool, users *UserRepository) *RoomRepository {
	return &RoomRepository{
		db:    db,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		users: users,
	}
}

const roomColumns = "id, room_number, floor, capacity, current_occupancy, status, created_at, updated_at"

func scanRoom(row pgx.Row) (*models.Room, error) {
	var room models.Room
	err := row.Scan(
		&room.ID, &room.RoomNumber, &room.Floor, &room.Capacity,
		&room.CurrentOccupancy, &room.Status, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// CreateRoom inserts a new room and returns its ID
func (r *RoomRepository) CreateRoom(ctx context.Context, room *models.Room) (int64, error) {
	sql, args, err := r.sb.Insert("rooms").
		Columns("room_number", "floor", "capacity", "current_occupancy", "status").
		Values(room.RoomNumber, room.Floor, room.Capacity, room.CurrentOccupancy, room.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create room query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("roomNumber", room.RoomNumber).Msg("Attempted to create room with existing number")
			return 0, apperrors.ErrRoomNumberExists
		}
		logger.Error().Err(err).Msg("Error executing create room query")
		return 0, fmt.Errorf("error inserting room: %w", err)
	}

	logger.Info().Int64("roomID", id).Str("roomNumber", room.RoomNumber).Msg("Room created successfully")
	return id, nil
}

// GetRoomByID retrieves a room by ID
func (r *RoomRepository) GetRoomByID(ctx context.Context, id int64) (*models.Room, error) {
	sql, args, err := r.sb.Select(roomColumns).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get room query: %w", err)
	}

	room, err := scanRoom(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("roomID", id).Msg("Room not found by ID")
			return nil, apperrors.ErrRoomNotFound
		}
		logger.Error().Err(err).Int64("roomID", id).Msg("Error scanning room row by ID")
		return nil, fmt.Errorf("error querying room ID=%d: %w", id, err)
	}
	return room, nil
}

// GetRoomByNumber retrieves a room by its unique room number
func (r *RoomRepository) GetRoomByNumber(ctx context.Context, roomNumber string) (*models.Room, error) {
	sql, args, err := r.sb.Select(roomColumns).
		From("rooms").
		Where(squirrel.Eq{"room_number": roomNumber}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get room by number query: %w", err)
	}

	room, err := scanRoom(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		logger.Error().Err(err).Str("roomNumber", roomNumber).Msg("Error scanning room row by number")
		return nil, fmt.Errorf("error querying room number=%s: %w", roomNumber, err)
	}
	return room, nil
}

// GetAllRooms retrieves rooms with pagination and optional filtering/sorting
func (r *RoomRepository) GetAllRooms(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]models.Room, int, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.sb.Select(roomColumns).From("rooms")
	countSelect := r.sb.Select("COUNT(*)").From("rooms")

	whereCondition := squirrel.And{}
	if status, ok := filters["status"].(string); ok && status != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"status": status})
	}
	if floor, ok := filters["floor"].(int); ok && floor > 0 {
		whereCondition = append(whereCondition, squirrel.Eq{"floor": floor})
	}
	if minCapacity, ok := filters["min_capacity"].(int); ok && minCapacity > 0 {
		whereCondition = append(whereCondition, squirrel.GtOrEq{"capacity": minCapacity})
	}
	if maxCapacity, ok := filters["max_capacity"].(int); ok && maxCapacity > 0 {
		whereCondition = append(whereCondition, squirrel.LtOrEq{"capacity": maxCapacity})
	}
	if search, ok := filters["search"].(string); ok && search != "" {
		whereCondition = append(whereCondition, squirrel.ILike{"room_number": "%" + strings.TrimSpace(search) + "%"})
	}

	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
		countSelect = countSelect.Where(whereCondition)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count rooms query: %w", err)
	}

	var totalItems int
	err = r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count rooms query")
		return nil, 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	if totalItems == 0 {
		return []models.Room{}, 0, nil
	}

	sortColumn, sortOrder := resolveSort(filters, map[string]string{
		"roomNumber": "room_number",
		"floor":      "floor",
		"capacity":   "capacity",
		"occupancy":  "current_occupancy",
		"status":     "status",
		"createdAt":  "created_at",
	}, "room_number", "ASC")

	baseSelect = baseSelect.OrderBy(fmt.Sprintf("%s %s", sortColumn, sortOrder)).
		Limit(uint64(pageSize)).
		Offset(offset)

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get rooms query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get rooms query")
		return nil, 0, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan room row: %w", err)
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating room rows: %w", err)
	}

	return rooms, totalItems, nil
}

// lockRoom reads a room row FOR UPDATE inside the given transaction.
func (r *RoomRepository) lockRoom(ctx context.Context, tx pgx.Tx, id int64) (*models.Room, error) {
	room, err := scanRoom(tx.QueryRow(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error locking room ID=%d: %w", id, err)
	}
	return room, nil
}

// writeRoom persists mutable room fields inside the given transaction,
// recomputing the stored status from the occupancy counters first.
func (r *RoomRepository) writeRoom(ctx context.Context, tx pgx.Tx, room *models.Room) error {
	room.Status = models.DeriveRoomStatus(room.CurrentOccupancy, room.Capacity, room.Status)

	sql, args, err := r.sb.Update("rooms").
		SetMap(map[string]interface{}{
			"room_number":       room.RoomNumber,
			"floor":             room.Floor,
			"capacity":          room.Capacity,
			"current_occupancy": room.CurrentOccupancy,
			"status":            room.Status,
			"updated_at":        squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": room.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update room query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrRoomNumberExists
		}
		return fmt.Errorf("error updating room ID=%d: %w", room.ID, err)
	}
	return nil
}

// UpdateRoom applies a mutation to a room inside a transaction. The row is
// locked first, mutate is applied to the fresh copy, the occupancy invariant
// is checked, and the status is recomputed before the write.
func (r *RoomRepository) UpdateRoom(ctx context.Context, id int64, mutate func(room *models.Room) error) (*models.Room, error) {
	var updated *models.Room
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		room, err := r.lockRoom(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := mutate(room); err != nil {
			return err
		}

		if room.CurrentOccupancy < 0 || room.CurrentOccupancy > room.Capacity {
			return apperrors.ErrOccupancyExceeded
		}

		if err := r.writeRoom(ctx, tx, room); err != nil {
			return err
		}

		updated = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("roomID", id).Str("status", string(updated.Status)).Msg("Room updated successfully")
	return updated, nil
}

// AssignStudent moves a student into a room inside a single transaction.
// Both the target room (and the student's previous room, if any) are locked,
// so concurrent assignments against the last free slot serialize and the
// occupancy invariant holds.
func (r *RoomRepository) AssignStudent(ctx context.Context, roomID, studentID int64) (*models.Room, error) {
	var assigned *models.Room
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		room, err := r.lockRoom(ctx, tx, roomID)
		if err != nil {
			return err
		}

		if room.Status == models.RoomMaintenance || room.Status == models.RoomReserved {
			return apperrors.ErrRoomUnavailable
		}
		if room.CurrentOccupancy >= room.Capacity {
			return apperrors.ErrRoomFull
		}

		var currentRoomNumber *string
		err = tx.QueryRow(ctx,
			"SELECT room_number FROM users WHERE id = $1 AND role = 'STUDENT' FOR UPDATE", studentID,
		).Scan(&currentRoomNumber)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("error locking user ID=%d: %w", studentID, err)
		}

		if currentRoomNumber != nil && *currentRoomNumber == room.RoomNumber {
			// Already in this room, nothing to do
			assigned = room
			return nil
		}

		// Release the previous room first
		if currentRoomNumber != nil {
			var prevID int64
			err := tx.QueryRow(ctx,
				"SELECT id FROM rooms WHERE room_number = $1 FOR UPDATE", *currentRoomNumber,
			).Scan(&prevID)
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				// Stale reference, the room was deleted; just reassign
			case err != nil:
				return fmt.Errorf("error locking previous room %s: %w", *currentRoomNumber, err)
			default:
				prev, err := r.lockRoom(ctx, tx, prevID)
				if err != nil {
					return err
				}
				if prev.CurrentOccupancy > 0 {
					prev.CurrentOccupancy--
				}
				if err := r.writeRoom(ctx, tx, prev); err != nil {
					return err
				}
			}
		}

		room.CurrentOccupancy++
		if err := r.writeRoom(ctx, tx, room); err != nil {
			return err
		}

		if err := r.users.UpdateRoomNumber(ctx, tx, studentID, &room.RoomNumber); err != nil {
			return err
		}

		assigned = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("roomID", roomID).Int64("studentID", studentID).
		Int("occupancy", assigned.CurrentOccupancy).
		Msg("Student assigned to room")
	return assigned, nil
}

// VacateStudent removes a student from their current room, reversing
// AssignStudent. The returned room is nil when the student's room reference
// was stale (the room row no longer exists); the reference is cleared either
// way.
func (r *RoomRepository) VacateStudent(ctx context.Context, studentID int64) (*models.Room, error) {
	var released *models.Room
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var currentRoomNumber *string
		err := tx.QueryRow(ctx,
			"SELECT room_number FROM users WHERE id = $1 AND role = 'STUDENT' FOR UPDATE", studentID,
		).Scan(&currentRoomNumber)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("error locking user ID=%d: %w", studentID, err)
		}

		if currentRoomNumber == nil {
			return apperrors.NewCustomError(apperrors.ErrConflict, "Student has no room assigned")
		}

		var roomID int64
		err = tx.QueryRow(ctx,
			"SELECT id FROM rooms WHERE room_number = $1 FOR UPDATE", *currentRoomNumber,
		).Scan(&roomID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// Stale reference, the room was deleted; just clear it
		case err != nil:
			return fmt.Errorf("error locking room %s: %w", *currentRoomNumber, err)
		default:
			room, err := r.lockRoom(ctx, tx, roomID)
			if err != nil {
				return err
			}
			if room.CurrentOccupancy > 0 {
				room.CurrentOccupancy--
			}
			if err := r.writeRoom(ctx, tx, room); err != nil {
				return err
			}
			released = room
		}

		return r.users.UpdateRoomNumber(ctx, tx, studentID, nil)
	})
	if err != nil {
		return nil, err
	}

	if released != nil {
		logger.Info().Int64("studentID", studentID).Int64("roomID", released.ID).
			Int("occupancy", released.CurrentOccupancy).
			Msg("Student vacated room")
	}
	return released, nil
}

// DeleteRoom removes a room
func (r *RoomRepository) DeleteRoom(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete room query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("roomID", id).Msg("Error executing delete room query")
		return fmt.Errorf("error deleting room ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	logger.Info().Int64("roomID", id).Msg("Room deleted successfully")
	return nil
}

// CountRooms returns the total number of rooms. Used by the seeder.
func (r *RoomRepository) CountRooms(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM rooms").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}
