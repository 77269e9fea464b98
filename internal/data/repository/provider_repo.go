package repository

import (
	"context"
	"fmt"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProviderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
	FindByEmail(ctx context.Context, email string) (*entity.Provider, error)
	FindByReferralCode(ctx context.Context, code string) (*entity.Provider, error)
	ListLocations(ctx context.Context) ([]entity.ProviderLocation, error)
	Update(ctx context.Context, provider *entity.Provider) error

	// Staging records
	CreateUnverified(ctx context.Context, provider *entity.UnverifiedProvider) error
	FindUnverifiedByEmail(ctx context.Context, email string) (*entity.UnverifiedProvider, error)
	ReferralCodeTaken(ctx context.Context, code string) (bool, error)
	Promote(ctx context.Context, unverifiedID uuid.UUID, provider *entity.Provider) error
	DeleteUnverifiedBefore(ctx context.Context, before time.Time) (int64, error)
}

type providerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProviderRepository(db database.PgxIface, log *zap.Logger) ProviderRepository {
	return &providerRepository{
		db:  db,
		log: log.With(zap.String("repository", "provider")),
	}
}

const selectProviderSQL = `
	SELECT id, name, email, password_hash, contact_number, city, address,
	       longitude, latitude, referral_code, is_verified, created_at, updated_at
	FROM providers
`

func (r *providerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	provider, err := scanProvider(r.db.QueryRow(ctx, selectProviderSQL+` WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find provider by ID",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return nil, fmt.Errorf("find provider by ID %s: %w", id.String(), err)
	}

	return provider, nil
}

// FindByEmail matches case-insensitively
func (r *providerRepository) FindByEmail(ctx context.Context, email string) (*entity.Provider, error) {
	provider, err := scanProvider(r.db.QueryRow(ctx, selectProviderSQL+` WHERE LOWER(email) = LOWER($1)`, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find provider by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find provider by email %s: %w", email, err)
	}

	return provider, nil
}

func (r *providerRepository) FindByReferralCode(ctx context.Context, code string) (*entity.Provider, error) {
	provider, err := scanProvider(r.db.QueryRow(ctx, selectProviderSQL+` WHERE referral_code = $1`, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find provider by referral code", zap.Error(err))
		return nil, fmt.Errorf("find provider by referral code: %w", err)
	}

	return provider, nil
}

func (r *providerRepository) ListLocations(ctx context.Context) ([]entity.ProviderLocation, error) {
	query := `
		SELECT id, name, address, city, contact_number, longitude, latitude
		FROM providers
		WHERE is_verified = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list provider locations", zap.Error(err))
		return nil, fmt.Errorf("list provider locations: %w", err)
	}
	defer rows.Close()

	locations := []entity.ProviderLocation{}
	for rows.Next() {
		var loc entity.ProviderLocation
		if err := rows.Scan(
			&loc.ID,
			&loc.Name,
			&loc.Address,
			&loc.City,
			&loc.ContactNumber,
			&loc.Location.Longitude,
			&loc.Location.Latitude,
		); err != nil {
			r.log.Error("Failed to scan provider location row", zap.Error(err))
			return nil, fmt.Errorf("scan provider location row: %w", err)
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

func (r *providerRepository) Update(ctx context.Context, provider *entity.Provider) error {
	query := `
		UPDATE providers
		SET name = $2, contact_number = $3, city = $4, address = $5,
		    referral_code = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		provider.ID,
		provider.Name,
		provider.ContactNumber,
		provider.City,
		provider.Address,
		provider.ReferralCode,
		provider.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update provider",
			zap.Error(err),
			zap.String("provider_id", provider.ID.String()),
		)
		return fmt.Errorf("update provider %s: %w", provider.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider %s not found", provider.ID.String())
	}

	return nil
}

func (r *providerRepository) CreateUnverified(ctx context.Context, provider *entity.UnverifiedProvider) error {
	query := `
		INSERT INTO unverified_providers (id, name, email, password_hash, contact_number, city,
		                                  address, longitude, latitude, referral_code,
		                                  verification_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		provider.ID,
		provider.Name,
		provider.Email,
		provider.PasswordHash,
		provider.ContactNumber,
		provider.City,
		provider.Address,
		provider.Location.Longitude,
		provider.Location.Latitude,
		provider.ReferralCode,
		provider.VerificationCode,
		provider.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create unverified provider",
			zap.Error(err),
			zap.String("email", provider.Email),
		)
		return fmt.Errorf("create unverified provider %s: %w", provider.Email, err)
	}

	return nil
}

func (r *providerRepository) FindUnverifiedByEmail(ctx context.Context, email string) (*entity.UnverifiedProvider, error) {
	query := `
		SELECT id, name, email, password_hash, contact_number, city, address,
		       longitude, latitude, referral_code, verification_code, created_at
		FROM unverified_providers
		WHERE LOWER(email) = LOWER($1)
	`

	var provider entity.UnverifiedProvider
	err := r.db.QueryRow(ctx, query, email).Scan(
		&provider.ID,
		&provider.Name,
		&provider.Email,
		&provider.PasswordHash,
		&provider.ContactNumber,
		&provider.City,
		&provider.Address,
		&provider.Location.Longitude,
		&provider.Location.Latitude,
		&provider.ReferralCode,
		&provider.VerificationCode,
		&provider.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find unverified provider",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find unverified provider %s: %w", email, err)
	}

	return &provider, nil
}

// ReferralCodeTaken checks verified and staged providers
func (r *providerRepository) ReferralCodeTaken(ctx context.Context, code string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM providers WHERE referral_code = $1)
		    OR EXISTS (SELECT 1 FROM unverified_providers WHERE referral_code = $1)
	`

	var taken bool
	if err := r.db.QueryRow(ctx, query, code).Scan(&taken); err != nil {
		r.log.Error("Failed to check referral code", zap.Error(err))
		return false, fmt.Errorf("check referral code: %w", err)
	}

	return taken, nil
}

// Promote inserts the verified provider and drops the staging record atomically
func (r *providerRepository) Promote(ctx context.Context, unverifiedID uuid.UUID, provider *entity.Provider) error {
	query := `
		INSERT INTO providers (id, name, email, password_hash, contact_number, city, address,
		                       longitude, latitude, referral_code, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query,
			provider.ID,
			provider.Name,
			provider.Email,
			provider.PasswordHash,
			provider.ContactNumber,
			provider.City,
			provider.Address,
			provider.Location.Longitude,
			provider.Location.Latitude,
			provider.ReferralCode,
			provider.IsVerified,
			provider.CreatedAt,
			provider.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert provider: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM unverified_providers WHERE id = $1`, unverifiedID)
		if err != nil {
			return fmt.Errorf("delete unverified provider: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("unverified provider %s not found", unverifiedID.String())
		}
		return nil
	})
	if err != nil {
		r.log.Error("Failed to promote provider",
			zap.Error(err),
			zap.String("unverified_id", unverifiedID.String()),
		)
		return fmt.Errorf("promote provider %s: %w", provider.Email, err)
	}

	return nil
}

func (r *providerRepository) DeleteUnverifiedBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM unverified_providers WHERE created_at < $1`, before)
	if err != nil {
		r.log.Error("Failed to purge unverified providers", zap.Error(err))
		return 0, fmt.Errorf("purge unverified providers: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	var provider entity.Provider
	err := row.Scan(
		&provider.ID,
		&provider.Name,
		&provider.Email,
		&provider.PasswordHash,
		&provider.ContactNumber,
		&provider.City,
		&provider.Address,
		&provider.Location.Longitude,
		&provider.Location.Latitude,
		&provider.ReferralCode,
		&provider.IsVerified,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &provider, nil
}
