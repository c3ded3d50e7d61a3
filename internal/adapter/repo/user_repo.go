package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wfm/internal/domain"
	"wfm/internal/infra"
	"wfm/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	sql infra.TxRunner
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(sql infra.TxRunner) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// Create inserts the user. A taken email surfaces as a uniqueness error.
func (r *UserRepositoryPG) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertUser,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.CPFCNPJ,
		u.Address,
		u.CEP,
		u.Picture,
		string(u.Type),
		u.IsStaff,
		u.IsSuperuser,
		u.IsActive,
		u.DateJoined,
	)
	return translateWrite(err, "")
}

// GetByID fetches a user by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByEmail, email))
}

// UpdateProfile writes the editable profile fields.
func (r *UserRepositoryPG) UpdateProfile(ctx context.Context, u *domain.User) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateUserProfile,
		u.ID,
		u.Email,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.CPFCNPJ,
		u.Address,
		u.CEP,
		u.Picture,
		string(u.Type),
	)
	if err != nil {
		return translateWrite(err, "")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive flips the soft-delete flag.
func (r *UserRepositoryPG) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QSetUserActive, id, active)
	if err != nil {
		return translateKey(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a user nobody references.
func (r *UserRepositoryPG) Delete(ctx context.Context, id string) error {
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		var donations, testimonials int64
		if err := tx.QueryRow(ctx, sqlinline.QCountUserReferences, id).Scan(&donations, &testimonials); err != nil {
			return translateKey(err)
		}
		if donations > 0 {
			return domain.Protected("donations", "user has recorded donations")
		}
		if testimonials > 0 {
			return domain.Protected("testimonials", "user has testimonials")
		}
		tag, err := tx.Exec(ctx, sqlinline.QDeleteUser, id)
		if err != nil {
			return translateDelete(err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.CPFCNPJ,
		&u.Address,
		&u.CEP,
		&u.Picture,
		&u.Type,
		&u.IsStaff,
		&u.IsSuperuser,
		&u.IsActive,
		&u.DateJoined,
	); err != nil {
		return nil, translateRead(err)
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
