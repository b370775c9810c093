package rest_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analos-labs/launchpad-engine/internal/api/middleware"
	"github.com/analos-labs/launchpad-engine/internal/api/rest"
	"github.com/analos-labs/launchpad-engine/internal/domain"
	"github.com/analos-labs/launchpad-engine/internal/logger"
	"github.com/analos-labs/launchpad-engine/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

const (
	authorityWallet = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	minterWallet    = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
)

type testServer struct {
	router *gin.Engine
	engine *mocks.MockEngine
	// signToken issues a JWT for the given subject, valid for an hour
	signToken func(t *testing.T, subject string) string
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	publicKeyDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	publicKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicKeyDER,
	})

	mockEngine := mocks.NewMockEngine(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(mockEngine), middleware.AuthConfig{
		JWTPublicKey: string(publicKeyPEM),
	})

	return &testServer{
		router: router,
		engine: mockEngine,
		signToken: func(t *testing.T, subject string) string {
			t.Helper()
			token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
				Subject:   subject,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			})
			signed, err := token.SignedString(privateKey)
			require.NoError(t, err)
			return signed
		},
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestAttemptMint(t *testing.T) {
	srv := setupTestServer(t)

	outcome := &domain.MintOutcome{
		CollectionID: "genesis-drop",
		MintIndex:    3,
		Minter:       domain.WalletID(minterWallet),
		Tier:         domain.TierWhitelist1,
		UnitPrice:    0,
		DiscountPct:  100,
		Variant:      domain.VariantNormal,
	}
	srv.engine.EXPECT().
		AttemptMint(gomock.Any(), "genesis-drop", domain.WalletID(minterWallet), "discord:742").
		Return(outcome, nil)

	w := srv.do(t, http.MethodPost, "/api/v1/collections/genesis-drop/mints", rest.MintRequest{
		Wallet:   minterWallet,
		Identity: "discord:742",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)

	var got domain.MintOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint64(3), got.MintIndex)
	assert.Equal(t, domain.TierWhitelist1, got.Tier)
	assert.Nil(t, got.RarityScore)
}

func TestAttemptMintMissingWallet(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/v1/collections/genesis-drop/mints", map[string]string{
		"identity": "discord:742",
	}, "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

func TestAttemptMintRejection(t *testing.T) {
	srv := setupTestServer(t)

	srv.engine.EXPECT().
		AttemptMint(gomock.Any(), "genesis-drop", domain.WalletID(minterWallet), "").
		Return(nil, domain.NewCapacityRejection(domain.TierWhitelist1))

	w := srv.do(t, http.MethodPost, "/api/v1/collections/genesis-drop/mints", rest.MintRequest{
		Wallet: minterWallet,
	}, "")

	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
			Tier string `json:"tier"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.ReasonCapacityExceeded), resp.Error.Code)
	assert.Equal(t, string(domain.TierWhitelist1), resp.Error.Tier)
}

func TestAttemptMintErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "unknown collection",
			err:        domain.ErrCollectionNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid wallet",
			err:        domain.ErrInvalidWallet,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "storage failure",
			err:        domain.ErrStorageFailure,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "tier halted",
			err:        &domain.InvariantViolation{CollectionID: "genesis-drop", Tier: domain.TierPublic, Detail: "minted exceeds allocated"},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := setupTestServer(t)
			srv.engine.EXPECT().
				AttemptMint(gomock.Any(), "genesis-drop", domain.WalletID(minterWallet), "").
				Return(nil, tc.err)

			w := srv.do(t, http.MethodPost, "/api/v1/collections/genesis-drop/mints", rest.MintRequest{
				Wallet: minterWallet,
			}, "")

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestGetRevealStatus(t *testing.T) {
	srv := setupTestServer(t)

	srv.engine.EXPECT().
		RevealStatus(gomock.Any(), "genesis-drop").
		Return(&domain.RevealStatus{
			CollectionID:    "genesis-drop",
			IsRevealed:      false,
			CurrentSupply:   4,
			RevealThreshold: 5,
		}, nil)

	w := srv.do(t, http.MethodGet, "/api/v1/collections/genesis-drop/reveal", nil, "")

	require.Equal(t, http.StatusOK, w.Code)

	var got domain.RevealStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.IsRevealed)
	assert.Equal(t, uint64(4), got.CurrentSupply)
}

func TestGetTierStatus(t *testing.T) {
	srv := setupTestServer(t)

	srv.engine.EXPECT().
		TierStatus(gomock.Any(), "genesis-drop", domain.TierWhitelist1).
		Return(&domain.TierStatus{
			CollectionID: "genesis-drop",
			Tier:         domain.TierWhitelist1,
			Allocated:    3,
			Minted:       1,
			Remaining:    2,
		}, nil)

	w := srv.do(t, http.MethodGet, "/api/v1/collections/genesis-drop/tiers/whitelist1", nil, "")

	require.Equal(t, http.StatusOK, w.Code)

	var got domain.TierStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint32(2), got.Remaining)
}

func TestGetTierStatusUnknownTier(t *testing.T) {
	srv := setupTestServer(t)

	srv.engine.EXPECT().
		TierStatus(gomock.Any(), "genesis-drop", domain.TierID("vip")).
		Return(nil, domain.ErrTierNotFound)

	w := srv.do(t, http.MethodGet, "/api/v1/collections/genesis-drop/tiers/vip", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCollections(t *testing.T) {
	srv := setupTestServer(t)

	srv.engine.EXPECT().Collections().Return([]string{"genesis-drop", "exclusive-drop"})

	w := srv.do(t, http.MethodGet, "/api/v1/collections", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "exclusive-drop")
}

func TestForceRevealRequiresAuth(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/v1/collections/genesis-drop/reveal", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForceReveal(t *testing.T) {
	srv := setupTestServer(t)

	srv.engine.EXPECT().
		ForceReveal(gomock.Any(), "genesis-drop", domain.WalletID(authorityWallet)).
		Return(&domain.RevealStatus{
			CollectionID:    "genesis-drop",
			IsRevealed:      true,
			CurrentSupply:   2,
			RevealThreshold: 5,
		}, nil)

	token := srv.signToken(t, authorityWallet)
	w := srv.do(t, http.MethodPost, "/api/v1/collections/genesis-drop/reveal", nil, token)

	require.Equal(t, http.StatusOK, w.Code)

	var got domain.RevealStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.IsRevealed)
}

func TestForceRevealNotAuthority(t *testing.T) {
	srv := setupTestServer(t)

	srv.engine.EXPECT().
		ForceReveal(gomock.Any(), "genesis-drop", domain.WalletID(minterWallet)).
		Return(nil, domain.ErrNotAuthorized)

	token := srv.signToken(t, minterWallet)
	w := srv.do(t, http.MethodPost, "/api/v1/collections/genesis-drop/reveal", nil, token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetPaused(t *testing.T) {
	srv := setupTestServer(t)

	srv.engine.EXPECT().
		SetPaused(gomock.Any(), "genesis-drop", domain.WalletID(authorityWallet), true).
		Return(nil)

	paused := true
	token := srv.signToken(t, authorityWallet)
	w := srv.do(t, http.MethodPost, "/api/v1/collections/genesis-drop/pause", rest.PauseRequest{Paused: &paused}, token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"paused":true`)
}

func TestSetPausedMissingBody(t *testing.T) {
	srv := setupTestServer(t)

	token := srv.signToken(t, authorityWallet)
	w := srv.do(t, http.MethodPost, "/api/v1/collections/genesis-drop/pause", map[string]string{}, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthCheck(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.do(t, http.MethodGet, "/health", nil, "")

	require.Equal(t, http.StatusOK, w.Code)

	var got rest.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "launchpad-api", got.Service)
}
