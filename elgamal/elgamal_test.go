package elgamal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/elshare"
	"github.com/f3rmion/elshare/bjj"
	"github.com/f3rmion/elshare/bls12381"
	"github.com/f3rmion/elshare/group"
	"github.com/f3rmion/elshare/randutil"
	"github.com/f3rmion/elshare/secp256k1"
)

const limit = 1 << 16

func TestGenerateKeyFromSeed(t *testing.T) {
	g := &bls12381.G1{}

	a, err := GenerateKeyFromSeed(g, 42)
	require.NoError(t, err)
	b, err := GenerateKeyFromSeed(g, 42)
	require.NoError(t, err)
	c, err := GenerateKeyFromSeed(g, 43)
	require.NoError(t, err)

	assert.True(t, a.Secret.Equal(b.Secret), "same seed must give the same secret")
	assert.True(t, a.Public.Equal(b.Public), "same seed must give the same public key")
	assert.False(t, a.Secret.Equal(c.Secret), "different seeds should differ")

	assert.False(t, a.Secret.IsZero())
	assert.True(t, group.BaseMult(g, a.Secret).Equal(a.Public))
}

func TestPublicFromSecret(t *testing.T) {
	g := &bls12381.G1{}
	kp, err := GenerateKey(g, nil)
	require.NoError(t, err)

	derived, err := PublicFromSecret(g, kp.Secret)
	require.NoError(t, err)
	assert.True(t, derived.Public.Equal(kp.Public))

	_, err = PublicFromSecret(g, g.NewScalar())
	assert.ErrorIs(t, err, elshare.ErrValidation)
}

func TestEncryptDecrypt(t *testing.T) {
	groups := []group.Group{&bls12381.G1{}, &bjj.BJJ{}, &secp256k1.Curve{}}
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			c := New(g)
			rng := randutil.NewSeeded(42)
			kp, err := GenerateKey(g, rng)
			require.NoError(t, err)

			for _, m := range []uint64{0, 1, 0x1234, limit - 1} {
				ct, err := c.Encrypt(rng, kp.Public, m, limit)
				require.NoError(t, err)

				got, err := c.Decrypt(kp.Secret, ct, limit)
				require.NoError(t, err)
				assert.Equal(t, m, got)
			}
		})
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	g := &bls12381.G1{}
	c := New(g)
	kp, err := GenerateKeyFromSeed(g, 42)
	require.NoError(t, err)

	a, err := c.Encrypt(nil, kp.Public, 7, limit)
	require.NoError(t, err)
	b, err := c.Encrypt(nil, kp.Public, 7, limit)
	require.NoError(t, err)

	assert.False(t, a.Equal(b), "two encryptions of one message should differ")
}

func TestEncryptRejectsOutOfRange(t *testing.T) {
	g := &bls12381.G1{}
	c := New(g)
	kp, err := GenerateKeyFromSeed(g, 42)
	require.NoError(t, err)

	_, err = c.Encrypt(nil, kp.Public, limit, limit)
	assert.ErrorIs(t, err, ErrMessageOutOfRange)
	assert.ErrorIs(t, err, elshare.ErrValidation)
}

func TestDecryptWrongKey(t *testing.T) {
	g := &bls12381.G1{}
	c := New(g)
	alice, err := GenerateKeyFromSeed(g, 1)
	require.NoError(t, err)
	bob, err := GenerateKeyFromSeed(g, 2)
	require.NoError(t, err)

	ct, err := c.Encrypt(randutil.NewSeeded(3), alice.Public, 1000, limit)
	require.NoError(t, err)

	_, err = c.Decrypt(bob.Secret, ct, limit)
	assert.True(t, errors.Is(err, ErrDecryptionFailed))
	assert.ErrorIs(t, err, elshare.ErrDecryption)
}

func TestDecryptMessageAboveLimit(t *testing.T) {
	g := &bls12381.G1{}
	c := New(g)
	kp, err := GenerateKeyFromSeed(g, 42)
	require.NoError(t, err)

	// Sealed against a wider bound, decrypted against a narrower one.
	ct, err := c.Encrypt(nil, kp.Public, 300, 1024)
	require.NoError(t, err)

	_, err = c.Decrypt(kp.Secret, ct, 256)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	got, err := c.Decrypt(kp.Secret, ct, 1024)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), got)
}

func TestSealWithSharedEphemeral(t *testing.T) {
	g := &bls12381.G1{}
	c := New(g)
	kp, err := GenerateKeyFromSeed(g, 42)
	require.NoError(t, err)

	r := g.NewScalar().SetUint64(123456)
	eph, err := c.NewEphemeral(kp.Public, r)
	require.NoError(t, err)
	assert.True(t, group.BaseMult(g, r).Equal(eph.R))

	a, err := c.Seal(eph, 10, limit)
	require.NoError(t, err)
	b, err := c.Seal(eph, 20, limit)
	require.NoError(t, err)

	assert.True(t, a.R.Equal(b.R), "sealed ciphertexts share R")
	assert.False(t, a.C.Equal(b.C))

	for want, ct := range map[uint64]*Ciphertext{10: a, 20: b} {
		got, err := c.Decrypt(kp.Secret, ct, limit)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = c.Seal(eph, limit, limit)
	assert.ErrorIs(t, err, ErrMessageOutOfRange)
}

func TestNewEphemeralRejectsZero(t *testing.T) {
	g := &bls12381.G1{}
	c := New(g)
	kp, err := GenerateKeyFromSeed(g, 42)
	require.NoError(t, err)

	_, err = c.NewEphemeral(kp.Public, g.NewScalar())
	assert.ErrorIs(t, err, ErrInvalidNonce)
}

func TestHomomorphicAddition(t *testing.T) {
	g := &bls12381.G1{}
	c := New(g)
	kp, err := GenerateKeyFromSeed(g, 42)
	require.NoError(t, err)

	a, err := c.Encrypt(nil, kp.Public, 1000, limit)
	require.NoError(t, err)
	b, err := c.Encrypt(nil, kp.Public, 2345, limit)
	require.NoError(t, err)

	sum := &Ciphertext{
		C: g.NewPoint().Add(a.C, b.C),
		R: g.NewPoint().Add(a.R, b.R),
	}
	got, err := c.Decrypt(kp.Secret, sum, limit)
	require.NoError(t, err)
	assert.Equal(t, uint64(3345), got)
}
