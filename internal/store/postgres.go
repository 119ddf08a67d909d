package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements Store on Postgres, using the schema applied by
// cmd/migrate. Sessions live in the database as well, so revocation
// survives a process restart.
type PGStore struct {
	Pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{Pool: pool}
}

func (s *PGStore) GetUser(ctx context.Context, id int) (User, error) {
	var u User
	err := s.Pool.QueryRow(ctx,
		`SELECT id, username, password, COALESCE(email, ''), COALESCE(org_code, '')
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.OrgCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *PGStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.Pool.QueryRow(ctx,
		`SELECT id, username, password, COALESCE(email, ''), COALESCE(org_code, '')
		 FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.OrgCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *PGStore) CreateUser(ctx context.Context, u User) (User, error) {
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO users (username, password, email, org_code)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		 RETURNING id`,
		u.Username, u.Password, u.Email, u.OrgCode,
	).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *PGStore) CreateAnalysis(ctx context.Context, a Analysis) (Analysis, error) {
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO analysis (user_id, target_account, content_type, content,
		                       semantic_analysis, threat_analysis, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		a.UserID, a.TargetAccount, a.ContentType, a.Content,
		a.SemanticAnalysis, a.ThreatAnalysis, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return Analysis{}, err
	}
	return a, nil
}

func (s *PGStore) GetAnalysisByID(ctx context.Context, id int) (Analysis, error) {
	var a Analysis
	err := s.Pool.QueryRow(ctx,
		`SELECT id, user_id, target_account, content_type, content,
		        COALESCE(semantic_analysis, ''), COALESCE(threat_analysis, ''), created_at
		 FROM analysis WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.UserID, &a.TargetAccount, &a.ContentType, &a.Content,
		&a.SemanticAnalysis, &a.ThreatAnalysis, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

func (s *PGStore) GetAnalysesByUserID(ctx context.Context, userID int) ([]Analysis, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, user_id, target_account, content_type, content,
		        COALESCE(semantic_analysis, ''), COALESCE(threat_analysis, ''), created_at
		 FROM analysis
		 WHERE user_id = $1
		 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Analysis, 0)
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.UserID, &a.TargetAccount, &a.ContentType, &a.Content,
			&a.SemanticAnalysis, &a.ThreatAnalysis, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PGStore) CreateContactRequest(ctx context.Context, r ContactRequest) (ContactRequest, error) {
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO contact_requests (name, email, type, message, created_at, resolved)
		 VALUES ($1, $2, $3, $4, $5, false)
		 RETURNING id`,
		r.Name, r.Email, r.Type, r.Message, r.CreatedAt,
	).Scan(&r.ID)
	if err != nil {
		return ContactRequest{}, err
	}
	r.Resolved = false
	return r, nil
}

func (s *PGStore) GetContactRequests(ctx context.Context) ([]ContactRequest, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, name, email, type, message, created_at, COALESCE(resolved, false)
		 FROM contact_requests
		 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ContactRequest, 0)
	for rows.Next() {
		var r ContactRequest
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Type, &r.Message, &r.CreatedAt, &r.Resolved); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PGStore) UpdateContactRequest(ctx context.Context, id int, resolved bool) (ContactRequest, error) {
	var r ContactRequest
	err := s.Pool.QueryRow(ctx,
		`UPDATE contact_requests SET resolved = $2
		 WHERE id = $1
		 RETURNING id, name, email, type, message, created_at, COALESCE(resolved, false)`,
		id, resolved,
	).Scan(&r.ID, &r.Name, &r.Email, &r.Type, &r.Message, &r.CreatedAt, &r.Resolved)
	if errors.Is(err, pgx.ErrNoRows) {
		return ContactRequest{}, ErrNotFound
	}
	return r, err
}

func (s *PGStore) CreateSession(ctx context.Context, sess Session) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, created_at) VALUES ($1::uuid, $2, $3)`,
		sess.ID, sess.UserID, sess.CreatedAt,
	)
	return err
}

func (s *PGStore) GetSession(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := s.Pool.QueryRow(ctx,
		`SELECT id::text, user_id, created_at FROM sessions WHERE id = $1::uuid`,
		id,
	).Scan(&sess.ID, &sess.UserID, &sess.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	return sess, err
}

func (s *PGStore) DeleteSession(ctx context.Context, id string) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1::uuid`, id)
	return err
}

func (s *PGStore) Counts(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.Pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM analysis),
			(SELECT COUNT(*) FROM contact_requests)`,
	).Scan(&st.Users, &st.Analyses, &st.ContactRequests)
	return st, err
}
