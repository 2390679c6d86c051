package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	similardto "disclosure_backend/internal/feature/similarcompany/transport/http/dto"
	jwtmw "disclosure_backend/internal/platform/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempStore はテストごとに一時ディレクトリのSQLiteを使うよう環境を整えます。
func useTempStore(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "test.db"))
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LLM_API_KEY", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"disclosurectl"}, args...))
	return out.String(), err
}

func TestSeedAskSectors(t *testing.T) {
	useTempStore(t)

	file := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"filed_at":"2024-06-01","issuer_name":"위메이드","issuer_industry":"게임","target_name":"위메이드트리",
		 "industry_category":"디지털자산","peer_companies":["코인베이스"]},
		{"issuer_name":"날짜없음"}
	]`), 0o600))

	out, err := run(t, "seed", "--file", file)
	require.NoError(t, err)
	assert.Equal(t, "seeded 1 records (1 skipped)\n", out)

	out, err = run(t, "sectors")
	require.NoError(t, err)
	assert.Equal(t, "게임\n", out)

	out, err = run(t, "ask", "가상자산 사업 유사기업")
	require.NoError(t, err)
	assert.Contains(t, out, `"route": "peer"`)
	assert.Contains(t, out, `"category": "디지털자산"`)
	assert.Contains(t, out, "위메이드")
}

func TestAsk_NoMatch(t *testing.T) {
	useTempStore(t)

	out, err := run(t, "ask", "존재하지않는업종 유사기업")
	require.NoError(t, err)
	assert.Contains(t, out, `"route": "peer"`)
	assert.Contains(t, out, similardto.NoMatchMessage)
}

func TestAsk_RequiresQuestion(t *testing.T) {
	useTempStore(t)

	_, err := run(t, "ask")
	assert.ErrorContains(t, err, "question is required")
}

func TestSeed_RequiresFile(t *testing.T) {
	_, err := run(t, "seed")
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("issues a verifiable token", func(t *testing.T) {
		t.Setenv(jwtmw.EnvKeyJWTSecret, "cli-secret")
		out, err := run(t, "token", "--subject", "batch", "--ttl", "1h")
		require.NoError(t, err)

		var claims jwt.RegisteredClaims
		_, err = jwt.ParseWithClaims(strings.TrimSpace(out), &claims, func(*jwt.Token) (any, error) {
			return []byte("cli-secret"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "batch", claims.Subject)
	})

	t.Run("fails without secret", func(t *testing.T) {
		t.Setenv(jwtmw.EnvKeyJWTSecret, "")
		_, err := run(t, "token", "--subject", "batch")
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}
