package characters

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/storage/sqlite"
)

const characterColumns = `id, owner_id, campaign_id, trainer_id, kind, name, species, nature, level,
types_json, base_stats_json, added_stats_json, combat_stages_json, current_hp, abilities_json,
version, created_at, updated_at`

const attachmentColumns = `a.id, a.character_id, a.kind, a.name, a.description, a.sort_order,
a.move_type, a.category, a.frequency, a.accuracy_check, a.damage_dice, a.rank, a.value`

// sqliteRepo stores characters in SQLite with one row per attachment
type sqliteRepo struct {
	db           *sql.DB
	timeProvider TimeProvider
}

// SQLiteRepoConfig holds configuration for the SQLite repository
type SQLiteRepoConfig struct {
	DB           *sql.DB
	TimeProvider TimeProvider // Optional
}

// NewSQLiteRepository creates a SQLite-backed character repository.
// The database must already carry the schema; sqlite.Open applies it.
func NewSQLiteRepository(cfg *SQLiteRepoConfig) Repository {
	if cfg == nil {
		panic("SQLiteRepoConfig cannot be nil")
	}
	if cfg.DB == nil {
		panic("sql db cannot be nil")
	}
	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = realTimeProvider{}
	}
	return &sqliteRepo{db: cfg.DB, timeProvider: timeProvider}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Create stores a new character
func (r *sqliteRepo) Create(ctx context.Context, char *entities.Character) error {
	if err := validateForWrite(char); err != nil {
		return err
	}

	stored := char.Clone()
	stored.Version = 1
	stored.CreatedAt = r.timeProvider.Now()
	stored.UpdatedAt = stored.CreatedAt

	args, err := characterArgs(stored)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var found int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM characters WHERE id = ?`, char.ID).Scan(&found)
	if err == nil {
		return apperr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check character existence: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO characters (`+characterColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}
	if err := insertAttachments(ctx, tx, stored); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit character: %w", err)
	}

	char.Version = stored.Version
	char.CreatedAt = stored.CreatedAt
	char.UpdatedAt = stored.UpdatedAt
	return nil
}

// Get retrieves a character by ID
func (r *sqliteRepo) Get(ctx context.Context, id string) (*entities.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	chars, err := r.query(ctx, `id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(chars) == 0 {
		return nil, apperr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	return chars[0], nil
}

// GetByOwner retrieves all characters for a specific owner
func (r *sqliteRepo) GetByOwner(ctx context.Context, ownerID string) ([]*entities.Character, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}
	return r.query(ctx, `owner_id = ?`, ownerID)
}

// GetByTrainer retrieves the Pokémon a trainer carries
func (r *sqliteRepo) GetByTrainer(ctx context.Context, trainerID string) ([]*entities.Character, error) {
	if trainerID == "" {
		return nil, apperr.InvalidArgument("trainer ID is required")
	}
	return r.query(ctx, `trainer_id = ?`, trainerID)
}

// query loads the characters matching where, then their attachments in one
// joined read
func (r *sqliteRepo) query(ctx context.Context, where string, arg any) ([]*entities.Character, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE `+where, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.Character, 0)
	byID := make(map[string]*entities.Character)
	for rows.Next() {
		char, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, char)
		byID[char.ID] = char
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read characters: %w", err)
	}
	if len(result) == 0 {
		return result, nil
	}

	if err := loadAttachments(ctx, r.db, `c.`+where, arg, byID); err != nil {
		return nil, err
	}

	slices.SortFunc(result, less)
	return result, nil
}

// Update rewrites the character row and all of its attachment rows in one
// transaction. The version predicate on the row update detects stale writers.
func (r *sqliteRepo) Update(ctx context.Context, char *entities.Character) error {
	if err := validateForWrite(char); err != nil {
		return err
	}

	next := char.Clone()
	next.Version = char.Version + 1
	next.UpdatedAt = r.timeProvider.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var storedVersion, createdAt int64
	err = tx.QueryRowContext(ctx,
		`SELECT version, created_at FROM characters WHERE id = ?`, char.ID,
	).Scan(&storedVersion, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFoundf("character with ID '%s' not found", char.ID).
			WithMeta("character_id", char.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to get existing character: %w", err)
	}
	if storedVersion != char.Version {
		return versionConflict(char.ID, storedVersion, char.Version)
	}
	next.CreatedAt = sqlite.UnixMillis(createdAt)

	args, err := characterArgs(next)
	if err != nil {
		return err
	}
	// id leads the column list; move it to the WHERE clause
	args = append(args[1:], char.ID, char.Version)

	res, err := tx.ExecContext(ctx, `UPDATE characters SET
owner_id = ?, campaign_id = ?, trainer_id = ?, kind = ?, name = ?, species = ?, nature = ?, level = ?,
types_json = ?, base_stats_json = ?, added_stats_json = ?, combat_stages_json = ?, current_hp = ?, abilities_json = ?,
version = ?, created_at = ?, updated_at = ?
WHERE id = ? AND version = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	} else if n == 0 {
		return versionConflict(char.ID, storedVersion, char.Version)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM character_attachments WHERE character_id = ?`, char.ID); err != nil {
		return fmt.Errorf("failed to clear attachments: %w", err)
	}
	if err := insertAttachments(ctx, tx, next); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit character: %w", err)
	}

	char.Version = next.Version
	char.CreatedAt = next.CreatedAt
	char.UpdatedAt = next.UpdatedAt
	return nil
}

// Delete removes a character
func (r *sqliteRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.InvalidArgument("character ID is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM character_attachments WHERE character_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	return tx.Commit()
}

// NextAttachmentID hands out a unique attachment id
func (r *sqliteRepo) NextAttachmentID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE id_sequences SET value = value + 1 WHERE name = 'attachment' RETURNING value`,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate attachment id: %w", err)
	}
	return id, nil
}

func characterArgs(c *entities.Character) ([]any, error) {
	types := c.Types
	if types == nil {
		types = []entities.PokemonType{}
	}
	abilities := c.Abilities
	if abilities == nil {
		abilities = []string{}
	}

	encoded := make([]string, 0, 5)
	for _, v := range []any{types, c.BaseStats, c.AddedStats, c.CombatStages, abilities} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal character: %w", err)
		}
		encoded = append(encoded, string(b))
	}

	return []any{
		c.ID, c.OwnerID, c.CampaignID, c.TrainerID, string(c.Kind), c.Name, c.Species, c.Nature, c.Level,
		encoded[0], encoded[1], encoded[2], encoded[3], c.CurrentHP, encoded[4],
		c.Version, c.CreatedAt.UnixMilli(), c.UpdatedAt.UnixMilli(),
	}, nil
}

func scanCharacter(rows *sql.Rows) (*entities.Character, error) {
	var (
		c                                     entities.Character
		kind                                  string
		types, base, added, stages, abilities string
		createdAt, updatedAt                  int64
	)
	if err := rows.Scan(
		&c.ID, &c.OwnerID, &c.CampaignID, &c.TrainerID, &kind, &c.Name, &c.Species, &c.Nature, &c.Level,
		&types, &base, &added, &stages, &c.CurrentHP, &abilities,
		&c.Version, &createdAt, &updatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan character: %w", err)
	}
	c.Kind = entities.CharacterKind(kind)
	c.CreatedAt = sqlite.UnixMillis(createdAt)
	c.UpdatedAt = sqlite.UnixMillis(updatedAt)

	for _, field := range []struct {
		raw  string
		into any
	}{
		{types, &c.Types},
		{base, &c.BaseStats},
		{added, &c.AddedStats},
		{stages, &c.CombatStages},
		{abilities, &c.Abilities},
	} {
		if err := json.Unmarshal([]byte(field.raw), field.into); err != nil {
			return nil, fmt.Errorf("failed to unmarshal character %s: %w", c.ID, err)
		}
	}
	if len(c.Types) == 0 {
		c.Types = nil
	}
	if len(c.Abilities) == 0 {
		c.Abilities = nil
	}
	return &c, nil
}

func loadAttachments(ctx context.Context, q queryer, where string, arg any, byID map[string]*entities.Character) error {
	rows, err := q.QueryContext(ctx, `SELECT `+attachmentColumns+`
FROM character_attachments a JOIN characters c ON c.id = a.character_id
WHERE `+where+`
ORDER BY a.character_id, a.kind, a.sort_order`, arg)
	if err != nil {
		return fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a           entities.Attachment
			characterID string
			kind        string
			moveType    string
			category    string
		)
		if err := rows.Scan(
			&a.ID, &characterID, &kind, &a.Name, &a.Description, &a.SortOrder,
			&moveType, &category, &a.Frequency, &a.AccuracyCheck, &a.DamageDice, &a.Rank, &a.Value,
		); err != nil {
			return fmt.Errorf("failed to scan attachment: %w", err)
		}
		a.Kind = entities.AttachmentKind(kind)
		a.Type = entities.PokemonType(moveType)
		a.Category = entities.MoveCategory(category)

		if char, ok := byID[characterID]; ok {
			char.Attachments = append(char.Attachments, &a)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read attachments: %w", err)
	}
	return nil
}

func insertAttachments(ctx context.Context, ex execer, c *entities.Character) error {
	for _, a := range c.Attachments {
		if _, err := ex.ExecContext(ctx, `INSERT INTO character_attachments
(id, character_id, kind, name, description, sort_order, move_type, category, frequency, accuracy_check, damage_dice, rank, value)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, c.ID, string(a.Kind), a.Name, a.Description, a.SortOrder,
			string(a.Type), string(a.Category), a.Frequency, a.AccuracyCheck, a.DamageDice, a.Rank, a.Value,
		); err != nil {
			return fmt.Errorf("failed to write attachment %d: %w", a.ID, err)
		}
	}
	return nil
}
