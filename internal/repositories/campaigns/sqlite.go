package campaigns

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/storage/sqlite"
)

// SQLiteRepoConfig holds configuration for the SQLite repository
type SQLiteRepoConfig struct {
	DB *sql.DB
}

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed campaign repository
func NewSQLiteRepository(cfg *SQLiteRepoConfig) Repository {
	if cfg == nil || cfg.DB == nil {
		panic("sql db is required")
	}
	return &sqliteRepository{db: cfg.DB}
}

func (r *sqliteRepository) Create(ctx context.Context, campaign *entities.Campaign) error {
	if err := validateForWrite(campaign); err != nil {
		return err
	}

	ruleset, err := encodeRuleset(campaign.Ruleset)
	if err != nil {
		return err
	}
	created := now()

	res, err := r.db.ExecContext(ctx, `INSERT INTO campaigns (id, owner_id, name, ruleset_json, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`,
		campaign.ID, campaign.OwnerID, campaign.Name, ruleset, created.UnixMilli(), created.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.AlreadyExistsf("campaign with ID '%s' already exists", campaign.ID).
			WithMeta("campaign_id", campaign.ID)
	}

	campaign.CreatedAt = created
	campaign.UpdatedAt = created
	return nil
}

func (r *sqliteRepository) Get(ctx context.Context, id string) (*entities.Campaign, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("campaign ID is required")
	}

	row := r.db.QueryRowContext(ctx, `SELECT id, owner_id, name, ruleset_json, created_at, updated_at
FROM campaigns WHERE id = ?`, id)
	campaign, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	return campaign, err
}

func (r *sqliteRepository) GetByOwner(ctx context.Context, ownerID string) ([]*entities.Campaign, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, owner_id, name, ruleset_json, created_at, updated_at
FROM campaigns WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read campaigns: %w", err)
	}
	return result, nil
}

func (r *sqliteRepository) Update(ctx context.Context, campaign *entities.Campaign) error {
	if err := validateForWrite(campaign); err != nil {
		return err
	}

	ruleset, err := encodeRuleset(campaign.Ruleset)
	if err != nil {
		return err
	}
	updated := now()

	var createdAt int64
	err = r.db.QueryRowContext(ctx, `UPDATE campaigns SET owner_id = ?, name = ?, ruleset_json = ?, updated_at = ?
WHERE id = ? RETURNING created_at`,
		campaign.OwnerID, campaign.Name, ruleset, updated.UnixMilli(), campaign.ID,
	).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(campaign.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	campaign.CreatedAt = sqlite.UnixMillis(createdAt)
	campaign.UpdatedAt = updated
	return nil
}

func (r *sqliteRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.InvalidArgument("campaign ID is required")
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row scanner) (*entities.Campaign, error) {
	var (
		c                    entities.Campaign
		ruleset              string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &ruleset, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan campaign: %w", err)
	}
	if ruleset != "" {
		c.Ruleset = &entities.Ruleset{}
		if err := json.Unmarshal([]byte(ruleset), c.Ruleset); err != nil {
			return nil, fmt.Errorf("failed to decode ruleset for campaign %s: %w", c.ID, err)
		}
	}
	c.CreatedAt = sqlite.UnixMillis(createdAt)
	c.UpdatedAt = sqlite.UnixMillis(updatedAt)
	return &c, nil
}

// encodeRuleset stores "" for campaigns on the default ruleset
func encodeRuleset(rs *entities.Ruleset) (string, error) {
	if rs == nil {
		return "", nil
	}
	data, err := json.Marshal(rs)
	if err != nil {
		return "", fmt.Errorf("failed to encode ruleset: %w", err)
	}
	return string(data), nil
}
