package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/bandroomhq/bandroom/internal/dbx"
	"github.com/bandroomhq/bandroom/internal/server/auth"
	"github.com/bandroomhq/bandroom/internal/server/config"
	"github.com/bandroomhq/bandroom/internal/server/models"
	"github.com/bandroomhq/bandroom/internal/server/repositories/repomanager"
	"golang.org/x/crypto/argon2"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// MemberService handles registration, login, and issuing/refreshing JWTs
// plus server-stored rotating refresh tokens.
type MemberService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewMemberService constructs a MemberService using repositories and server config.
func NewMemberService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *MemberService {
	return &MemberService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// hashPassword derives an argon2id hash from password and salt.
func hashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// Register creates a new member with a fresh random salt.
func (s *MemberService) Register(ctx context.Context, email string, password []byte) (*models.Member, error) {
	salt := common.GenerateRandByteArray(32)
	member := &models.Member{
		Email:        email,
		PasswordHash: hashPassword(password, salt),
		Salt:         salt,
	}

	repo := s.repomanager.Members(s.db)
	created, err := repo.Create(ctx, member)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating member: %w", err)
	}
	return created, nil
}

// Login verifies the password and, on success, returns a new TokenPair
// scoped to bandID. When bandID is non-empty, membership is checked; a
// member cannot mint a session for a band they do not belong to.
func (s *MemberService) Login(ctx context.Context, email string, password []byte, bandID string) (*TokenPair, error) {
	repo := s.repomanager.Members(s.db)

	member, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	candidate := hashPassword(password, member.Salt)
	if subtle.ConstantTimeCompare(member.PasswordHash, candidate) != 1 {
		return nil, common.ErrorUnauthorized
	}

	if bandID != "" {
		ok, err := repo.IsMemberOfBand(ctx, member.ID, bandID)
		if err != nil {
			return nil, common.ErrorInternal
		}
		if !ok {
			return nil, common.ErrorUnauthorized
		}
	}

	return s.generateTokenPair(ctx, member.ID, bandID, s.db)
}

// RefreshSession validates a refresh token, rotates it transactionally,
// and returns a fresh TokenPair under the requested band scope. Expired
// tokens yield common.ErrRefreshTokenExpired. Band membership is
// re-checked on every rotation: a refresh token proves identity, not
// membership, and the minted claim is what every tenant check trusts.
func (s *MemberService) RefreshSession(ctx context.Context, refreshToken string, bandID string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	if bandID != "" {
		ok, err := s.repomanager.Members(s.db).IsMemberOfBand(ctx, token.UserID, bandID)
		if err != nil {
			return nil, common.ErrorInternal
		}
		if !ok {
			return nil, common.ErrorUnauthorized
		}
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, bandID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// --- helpers below ---

func (s *MemberService) generateAccessToken(userID, bandID string) (string, error) {
	return auth.GenerateToken(userID, bandID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *MemberService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *MemberService) generateTokenPair(ctx context.Context, userID, bandID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID, bandID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.accessTokenValidityDuration),
	}, nil
}
