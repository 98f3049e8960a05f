package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPrime  = "208351617316091241234326746312124448251235562226470491514186331217050270460481"
	testSecret = "156402071732811106507596152138279689577457410967997136623970051482223809533794"
)

// isolate points HOME at an empty directory and clears ELSHARE_*
// variables so the host environment cannot leak into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"ELSHARE_CURVE", "ELSHARE_BASE", "ELSHARE_OUTPUT", "ELSHARE_VERBOSE"} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, stdin, args...)
	require.NoError(t, err, "elshare %s", strings.Join(args, " "))
	return out
}

type keyPairDoc struct {
	Curve     string `json:"curve"`
	SecretKey string `json:"secret_key"`
	PublicKey string `json:"public_key"`
}

func keygen(t *testing.T, seed string, extra ...string) keyPairDoc {
	t.Helper()
	args := append([]string{"keygen", "-o", "json", "--seed", seed}, extra...)
	var kp keyPairDoc
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "", args...)), &kp))
	return kp
}

func TestKeygen(t *testing.T) {
	isolate(t)

	a := keygen(t, "42")
	b := keygen(t, "42")
	c := keygen(t, "43")

	assert.Equal(t, "bls12-381", a.Curve)
	assert.Equal(t, a, b, "same seed must give the same key pair")
	assert.NotEqual(t, a.SecretKey, c.SecretKey)
	assert.Len(t, a.PublicKey, 96, "compressed G1 point is 48 bytes")

	out := mustRun(t, "", "keygen", "--curve", "babyjubjub")
	assert.Contains(t, out, "Curve:      babyjubjub")
	assert.Contains(t, out, "Secret key: ")
}

func TestSplitAndCombine(t *testing.T) {
	isolate(t)

	doc := mustRun(t, "", "split", "-o", "json",
		"--secret", testSecret, "-t", "5", "-n", "10", "--prime", testPrime, "--seed", "42")

	var parsed sharingJSON
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, 5, parsed.Threshold)
	assert.Equal(t, 10, parsed.Total)
	assert.Equal(t, testPrime, parsed.Prime)
	require.Len(t, parsed.Shares, 10)

	out := mustRun(t, doc, "combine", "--in", "-")
	assert.Equal(t, testSecret+"\n", out)

	t.Run("FromShareFlags", func(t *testing.T) {
		args := []string{"combine", "-t", "5", "--prime", testPrime}
		for _, sh := range parsed.Shares[3:8] {
			args = append(args, "--share", shareFlag(sh))
		}
		assert.Equal(t, testSecret+"\n", mustRun(t, "", args...))
	})

	t.Run("TooFewShares", func(t *testing.T) {
		args := []string{"combine", "-t", "5", "--prime", testPrime}
		for _, sh := range parsed.Shares[:4] {
			args = append(args, "--share", shareFlag(sh))
		}
		_, err := run(t, "", args...)
		assert.Error(t, err)
	})

	t.Run("SmallField", func(t *testing.T) {
		out := mustRun(t, "", "combine", "-t", "2", "--prime", "11",
			"--share", "1:10", "--share", "2:2", "-o", "json")
		assert.JSONEq(t, `{"secret":"7"}`, out)
	})

	t.Run("TextTable", func(t *testing.T) {
		out := mustRun(t, "", "split", "--secret", "1234", "-t", "2", "-n", "3")
		assert.Contains(t, out, "Share Index 2/3")
		assert.Contains(t, out, "SS f(0)")
		assert.Contains(t, out, "1234")
		assert.Contains(t, out, "f(3)")
	})
}

// shareFlag renders a share in --share syntax.
func shareFlag(s shareJSON) string {
	return fmt.Sprintf("%d:%s", s.Index, s.Value)
}

func TestReshareAndSelect(t *testing.T) {
	isolate(t)

	doc := mustRun(t, "", "split", "-o", "json",
		"--secret", testSecret, "-t", "5", "-n", "10", "--prime", testPrime, "--seed", "42")

	reshared := mustRun(t, doc, "reshare", "-o", "json", "--in", "-",
		"--new-threshold", "3", "--new-total", "6", "--seed", "53")
	var parsed sharingJSON
	require.NoError(t, json.Unmarshal([]byte(reshared), &parsed))
	assert.Equal(t, 3, parsed.Threshold)
	assert.Equal(t, 6, parsed.Total)
	assert.Equal(t, testSecret, parsed.Secret)

	selected := mustRun(t, reshared, "select", "-o", "json", "--in", "-", "--seed", "1")
	require.NoError(t, json.Unmarshal([]byte(selected), &parsed))
	assert.Len(t, parsed.Shares, 3)

	out := mustRun(t, selected, "combine", "--in", "-")
	assert.Equal(t, testSecret+"\n", out)
}

func TestEncryptDecrypt(t *testing.T) {
	isolate(t)
	kp := keygen(t, "42")

	t.Run("DistinctNonces", func(t *testing.T) {
		ct := mustRun(t, "", "encrypt", "--pk", kp.PublicKey, "--share", "123456789")
		out := mustRun(t, ct, "decrypt", "--sk", kp.SecretKey)
		assert.Equal(t, "123456789\n", out)

		again := mustRun(t, "", "encrypt", "--pk", kp.PublicKey, "--share", "123456789")
		assert.NotEqual(t, ct, again)
	})

	t.Run("SharedNonce", func(t *testing.T) {
		ct := mustRun(t, "", "encrypt", "--pk", kp.PublicKey, "--share", "123456789", "--nonce", "987654321")
		var chunks []map[string]string
		require.NoError(t, json.Unmarshal([]byte(ct), &chunks))
		require.Len(t, chunks, 16)
		assert.Equal(t, chunks[0]["r"], chunks[15]["r"])

		out := mustRun(t, ct, "decrypt", "--sk", kp.SecretKey, "-o", "json")
		assert.JSONEq(t, `{"share":"123456789"}`, out)
	})

	t.Run("FromFile", func(t *testing.T) {
		ct := mustRun(t, "", "encrypt", "--pk", kp.PublicKey, "--share", "0x1f")
		path := filepath.Join(t.TempDir(), "ct.json")
		require.NoError(t, os.WriteFile(path, []byte(ct), 0o600))
		assert.Equal(t, "31\n", mustRun(t, "", "decrypt", "--sk", kp.SecretKey, "--in", path))
	})

	t.Run("WrongKey", func(t *testing.T) {
		other := keygen(t, "7")
		ct := mustRun(t, "", "encrypt", "--pk", kp.PublicKey, "--share", "5")
		_, err := run(t, ct, "decrypt", "--sk", other.SecretKey)
		assert.Error(t, err)
	})

	t.Run("InvalidNonce", func(t *testing.T) {
		_, err := run(t, "", "encrypt", "--pk", kp.PublicKey, "--share", "5", "--nonce", "0")
		assert.Error(t, err)
	})
}

func TestDealAndReceive(t *testing.T) {
	isolate(t)

	keys := []keyPairDoc{keygen(t, "1"), keygen(t, "2"), keygen(t, "3")}
	args := []string{"deal", "--secret", "5555", "-t", "2", "--seed", "9"}
	for _, k := range keys {
		args = append(args, "--pk", k.PublicKey)
	}
	dist := mustRun(t, "", args...)
	assert.Contains(t, dist, `"epoch": 1`)

	var shares []string
	for i, k := range []int{0, 2} {
		out := mustRun(t, dist, "receive", "--sk", keys[k].SecretKey, "--index", strconv.Itoa(k+1))
		assert.True(t, strings.HasPrefix(out, strconv.Itoa(k+1)+":"), "receive %d printed %q", i, out)
		shares = append(shares, strings.TrimSpace(out))
	}

	out := mustRun(t, "", "combine", "-t", "2", "--share", shares[0], "--share", shares[1])
	assert.Equal(t, "5555\n", out)

	t.Run("WrongIndex", func(t *testing.T) {
		_, err := run(t, dist, "receive", "--sk", keys[0].SecretKey, "--index", "2")
		assert.Error(t, err)
	})
}

func TestConfiguration(t *testing.T) {
	t.Run("ConfigFile", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "elshare.yaml")
		require.NoError(t, os.WriteFile(path, []byte("curve: secp256k1\noutput: json\n"), 0o600))

		out := mustRun(t, "", "keygen", "--config", path)
		var kp keyPairDoc
		require.NoError(t, json.Unmarshal([]byte(out), &kp))
		assert.Equal(t, "secp256k1", kp.Curve)
	})

	t.Run("HomeConfigFile", func(t *testing.T) {
		isolate(t)
		home := t.TempDir()
		t.Setenv("HOME", home)
		require.NoError(t, os.WriteFile(filepath.Join(home, ".elshare.yaml"), []byte("curve: babyjubjub\n"), 0o600))

		assert.Equal(t, "babyjubjub", keygen(t, "1").Curve)
	})

	t.Run("Environment", func(t *testing.T) {
		isolate(t)
		t.Setenv("ELSHARE_CURVE", "ed25519")
		assert.Equal(t, "ed25519", keygen(t, "1").Curve)

		// flags win over the environment
		assert.Equal(t, "secp256k1", keygen(t, "1", "--curve", "secp256k1").Curve)
	})

	t.Run("MissingConfigFile", func(t *testing.T) {
		isolate(t)
		_, err := run(t, "", "keygen", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("UnknownCurve", func(t *testing.T) {
		isolate(t)
		_, err := run(t, "", "keygen", "--curve", "p256")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown curve")
	})

	t.Run("UnknownOutput", func(t *testing.T) {
		isolate(t)
		_, err := run(t, "", "keygen", "-o", "xml")
		assert.Error(t, err)
	})

	t.Run("InvalidBase", func(t *testing.T) {
		isolate(t)
		_, err := run(t, "", "keygen", "--base", "1")
		assert.Error(t, err)
	})
}

func TestVersion(t *testing.T) {
	isolate(t)
	out := mustRun(t, "", "version")
	assert.Contains(t, out, "elshare version dev")

	out = mustRun(t, "", "version", "-o", "json")
	var v map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, Version, v["version"])
}

func TestSupportedCurves(t *testing.T) {
	assert.Equal(t, []string{"babyjubjub", "bls12-381", "ed25519", "secp256k1"}, SupportedCurves())
	for _, name := range SupportedCurves() {
		g, err := LookupCurve(name)
		require.NoError(t, err)
		assert.Equal(t, name, g.Name())
	}
}
