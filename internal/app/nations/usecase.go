package nations

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	mrand "math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"nationsim/internal/app/ports"
	"nationsim/internal/domain/nation"
)

var (
	ErrInvalidRequest     = errors.New("invalid nation request")
	ErrInvalidCredentials = errors.New("invalid nation credentials")
	ErrWorldFull          = errors.New("no unclaimed regions remain")
	ErrAlreadyClaimed     = errors.New("nation already claimed")
)

type RegisterRequest struct {
	Name      string `json:"name"`
	FounderID string `json:"founder_id"`
}

type RegisterResponse struct {
	NationID  string `json:"nation_id"`
	APIKey    string `json:"api_key"`
	ClaimCode string `json:"claim_code"`
	Capital   string `json:"capital"`
	IssuedAt  string `json:"issued_at"`
}

type ClaimRequest struct {
	NationID  string `json:"nation_id"`
	ClaimCode string `json:"claim_code"`
}

type ClaimResponse struct {
	NationID string `json:"nation_id"`
	Status   string `json:"status"`
}

// RegisterUseCase founds a nation on a randomly chosen unclaimed region and
// issues its API credential. The nation starts pending_claim and cannot act
// until claimed.
type RegisterUseCase struct {
	Nations     ports.NationRepository
	Regions     ports.RegionRepository
	Credentials ports.NationCredentialRepository
	Events      ports.EventRepository
	Clock       ports.ClockRepository
	TxManager   ports.TxManager
	Rand        *mrand.Rand
	Now         func() time.Time
}

func (u RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return RegisterResponse{}, ErrInvalidRequest
	}
	if u.Nations == nil || u.Regions == nil || u.Credentials == nil || u.TxManager == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	apiKey, err := newAPIKey()
	if err != nil {
		return RegisterResponse{}, err
	}
	claimCode, err := newClaimCode()
	if err != nil {
		return RegisterResponse{}, err
	}
	nationID := uuid.NewString()

	var resp RegisterResponse
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		unclaimed, err := u.Regions.ListUnclaimed(txCtx)
		if err != nil {
			return err
		}
		if len(unclaimed) == 0 {
			return ErrWorldFull
		}
		home := unclaimed[u.intn(len(unclaimed))]

		var epoch int64
		if u.Clock != nil {
			clock, err := u.Clock.Get(txCtx)
			if err != nil {
				return err
			}
			epoch = clock.Epoch
		}

		n := nation.Nation{
			ID:             nationID,
			Name:           req.Name,
			FounderID:      req.FounderID,
			Treasury:       nation.StartingTreasury,
			MilitaryPower:  nation.StartingMilitary,
			DiplomacyScore: nation.StartingDiplomacy,
			Reputation:     nation.StartingReputation,
			TaxRate:        nation.StartingTaxRate,
			Status:         nation.StatusPendingClaim,
			CreatedAt:      now,
			LastActive:     now,
		}
		n.GainRegion(home.ID)

		home.OwnerNation = nationID
		if err := u.Regions.Save(txCtx, home); err != nil {
			return err
		}
		if err := u.Nations.Save(txCtx, n); err != nil {
			return err
		}
		if err := u.Credentials.Create(txCtx, ports.NationCredentialRecord{
			NationID:  nationID,
			KeyHash:   KeyHash(apiKey),
			ClaimCode: claimCode,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		if u.Events != nil {
			err := u.Events.Append(txCtx, nation.WorldEvent{
				ID:         uuid.NewString(),
				Type:       nation.EventNationFounded,
				NationID:   nationID,
				NationName: n.Name,
				RegionID:   home.ID,
				RegionName: home.Name,
				Message:    fmt.Sprintf("%s was founded in %s", n.Name, home.Name),
				Details:    map[string]any{"epoch": epoch},
				Timestamp:  now,
			})
			if err != nil {
				return err
			}
		}

		resp = RegisterResponse{
			NationID:  nationID,
			APIKey:    apiKey,
			ClaimCode: claimCode,
			Capital:   home.ID,
			IssuedAt:  now.Format(time.RFC3339),
		}
		return nil
	})
	if err != nil {
		return RegisterResponse{}, err
	}
	return resp, nil
}

func (u RegisterUseCase) intn(n int) int {
	if u.Rand != nil {
		return u.Rand.Intn(n)
	}
	return mrand.Intn(n)
}

// ClaimUseCase flips a pending_claim nation to active when the correct claim
// code is presented. Claiming is one-shot: a second attempt is a conflict.
type ClaimUseCase struct {
	Nations     ports.NationRepository
	Credentials ports.NationCredentialRepository
	TxManager   ports.TxManager
	Now         func() time.Time
}

func (u ClaimUseCase) Execute(ctx context.Context, req ClaimRequest) (ClaimResponse, error) {
	req.NationID = strings.TrimSpace(req.NationID)
	req.ClaimCode = strings.TrimSpace(req.ClaimCode)
	if req.NationID == "" || req.ClaimCode == "" || u.Nations == nil || u.TxManager == nil {
		return ClaimResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var resp ClaimResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := u.Nations.Get(txCtx, req.NationID)
		if err != nil {
			return err
		}
		switch n.Status {
		case nation.StatusPendingClaim:
		case nation.StatusActive:
			return ErrAlreadyClaimed
		default:
			return ErrInvalidCredentials
		}
		if !claimCodeMatches(txCtx, u.Credentials, n.ID, req.ClaimCode) {
			return ErrInvalidCredentials
		}
		n.Status = nation.StatusActive
		n.LastActive = nowFn().UTC()
		if err := u.Nations.Save(txCtx, n); err != nil {
			return err
		}
		resp = ClaimResponse{NationID: n.ID, Status: string(n.Status)}
		return nil
	})
	if err != nil {
		return ClaimResponse{}, err
	}
	return resp, nil
}

// VerifyUseCase resolves a bearer API key to its nation id.
type VerifyUseCase struct {
	Credentials ports.NationCredentialRepository
}

func (u VerifyUseCase) Execute(ctx context.Context, apiKey string) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" || u.Credentials == nil {
		return "", ErrInvalidCredentials
	}
	rec, err := u.Credentials.GetByKeyHash(ctx, KeyHash(apiKey))
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return rec.NationID, nil
}

// KeyHash is the stored digest of an API key. Keys are random tokens, so a
// plain unsalted hash suffices for lookup.
func KeyHash(apiKey string) []byte {
	sum := sha256.Sum256([]byte(apiKey))
	return sum[:]
}

func claimCodeMatches(ctx context.Context, creds ports.NationCredentialRepository, nationID, code string) bool {
	if creds == nil {
		return false
	}
	rec, err := creds.GetByNationID(ctx, nationID)
	if err != nil {
		return false
	}
	return rec.ClaimCode != "" && subtle.ConstantTimeCompare([]byte(rec.ClaimCode), []byte(code)) == 1
}

func newAPIKey() (string, error) {
	token, err := randomToken(24)
	if err != nil {
		return "", err
	}
	return "nation_" + token, nil
}

func newClaimCode() (string, error) {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("world-%02X%02X", b[0], b[1]), nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
