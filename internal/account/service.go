package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/AndyisCodingMate/housesync-product/internal/documents"
	"github.com/AndyisCodingMate/housesync-product/internal/profilepictures"
)

type Service struct {
	DocRepo documents.DocumentsRepo
	PicRepo profilepictures.Repo
}

type ClaimResult struct {
	MigratedDocuments int `json:"migratedDocuments"`
	MigratedPictures  int `json:"migratedPictures"`
}

func NewService(docRepo documents.DocumentsRepo, picRepo profilepictures.Repo) *Service {
	return &Service{DocRepo: docRepo, PicRepo: picRepo}
}

// ClaimGuest reassigns a guest identity's documents and profile pictures
// to the authenticated account.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}

	if docPG, ok := s.DocRepo.(*documents.PGRepo); ok && docPG != nil && docPG.DB != nil {
		if picPG, ok := s.PicRepo.(*profilepictures.PGRepo); ok && picPG != nil && picPG.DB != nil {
			return claimWithTx(ctx, docPG.DB, guestUserID, authedUserID)
		}
	}

	docCount, err := claimRows(ctx, s.DocRepo, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	picCount, err := claimRows(ctx, s.PicRepo, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedDocuments: docCount, MigratedPictures: picCount}, nil
}

func claimWithTx(ctx context.Context, db *sql.DB, guestUserID, authedUserID string) (ClaimResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	docRes, err := tx.ExecContext(ctx, `UPDATE user_documents SET user_id = $1, updated_at = now() WHERE user_id = $2`, authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	docCount, _ := docRes.RowsAffected()

	picRes, err := tx.ExecContext(ctx, `UPDATE user_profile_pictures SET user_id = $1, updated_at = now() WHERE user_id = $2`, authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	picCount, _ := picRes.RowsAffected()

	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedDocuments: int(docCount), MigratedPictures: int(picCount)}, nil
}

type guestClaimer interface {
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}

func claimRows(ctx context.Context, repo any, guestUserID, authedUserID string) (int, error) {
	if claimer, ok := repo.(guestClaimer); ok {
		return claimer.ClaimGuest(ctx, guestUserID, authedUserID)
	}
	return 0, errors.New("repo does not support claim")
}
