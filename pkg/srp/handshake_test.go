package srp

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 5054 Appendix B test vector: 1024-bit group, SHA-1, identity "alice",
// password "password123".
var rfc5054Vector = struct {
	salt, a, b, x, u, v, A, B, premaster string
}{
	salt: "BEB25379D1A8581EB5A727673A2441EE",
	a:    "60975527035CF2AD1989806F0407210BC81EDC04E2762A56AFD529DDDA2D4393",
	b:    "E487CB59D31AC550471E81F00F6928E01DDA08E974A004F49E61F5D105284D20",
	x:    "94B7555AABE9127CC58CCF4993DB6CF84D16C124",
	u:    "CE38B9593487DA98554ED47D70A7AE5F462EF019",
	v: "7E273DE8 696FFC4F 4E337D05 B4B375BE B0DDE156 9E8FA00A 9886D812" +
		"9BADA1F1 822223CA 1A605B53 0E379BA4 729FDC59 F105B478 7E5186F5" +
		"C671085A 1447B52A 48CF1970 B4FB6F84 00BBF4CE BFBB1681 52E08AB5" +
		"EA53D15C 1AFF87B2 B9DA6E04 E058AD51 CC72BFC9 033B564E 26480D78" +
		"E955A5E2 9E7AB245 DB2BE315 E2099AFB",
	A: "61D5E490 F6F1B795 47B0704C 436F523D D0E560F0 C64115BB 72557EC4" +
		"4352E890 3211C046 92272D8B 2D1A5358 A2CF1B6E 0BFCF99F 921530EC" +
		"8E393561 79EAE45E 42BA92AE ACED8251 71E1E8B9 AF6D9C03 E1327F44" +
		"BE087EF0 6530E69F 66615261 EEF54073 CA11CF58 58F0EDFD FE15EFEA" +
		"B349EF5D 76988A36 72FAC47B 0769447B",
	B: "BD0C6151 2C692C0C B6D041FA 01BB152D 4916A1E7 7AF46AE1 05393011" +
		"BAF38964 DC46A067 0DD125B9 5A981652 236F99D9 B681CBF8 7837EC99" +
		"6C6DA044 53728610 D0C6DDB5 8B318885 D7D82C7F 8DEB75CE 7BD4FBAA" +
		"37089E6F 9C6059F3 88838E7A 00030B33 1EB76840 910440B1 B27AAEAE" +
		"EB4012B7 D7665238 A8E3FB00 4B117B58",
	premaster: "B0DC82BA BCF30674 AE450C02 87745E79 90A3381F 63B387AA F271A10D" +
		"233861E3 59B48220 F7C4693C 9AE12B0A 6F67809F 0876E2D0 13800D6C" +
		"41BB59B6 D5979B5C 00A172B4 A2A5903A 0BDCAF8A 709585EB 2AFAFA8F" +
		"3499B200 210DCC1F 10EB3394 3CD67FC8 8A2F39A4 BE5BEC4E C0A3212D" +
		"C346D7E4 74B29EDE 8A469FFE CA686E5A",
}

func vectorBytes(t *testing.T, s string) []byte {
	t.Helper()
	data, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return data
}

func vectorInt(t *testing.T, s string) *big.Int {
	t.Helper()
	return new(big.Int).SetBytes(vectorBytes(t, s))
}

func TestHandshake_RFC5054Vector(t *testing.T) {
	p := testParams(t)

	salt := vectorBytes(t, rfc5054Vector.salt)
	v, err := ComputeVerifier(p, "alice", "password123", salt)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Cmp(vectorInt(t, rfc5054Vector.v)), "verifier")

	client, err := NewClientSession(p, "alice", "password123")
	require.NoError(t, err)
	server, err := NewServerSession(p, "alice", salt, v)
	require.NoError(t, err)

	// Pin the ephemeral secrets to the published values.
	client.secret = vectorInt(t, rfc5054Vector.a)
	server.secret = vectorInt(t, rfc5054Vector.b)

	A, err := client.PublicEphemeral()
	require.NoError(t, err)
	assert.Equal(t, vectorBytes(t, rfc5054Vector.A), A, "A")

	B, err := server.PublicEphemeral()
	require.NoError(t, err)
	assert.Equal(t, vectorBytes(t, rfc5054Vector.B), B, "B")

	require.NoError(t, client.SetSalt(salt))
	require.NoError(t, client.SetPeerEphemeral(B))
	require.NoError(t, server.SetPeerEphemeral(A))

	assert.Equal(t, 0, client.u.Cmp(vectorInt(t, rfc5054Vector.u)), "u")

	x, err := client.credentialsHash()
	require.NoError(t, err)
	assert.Equal(t, 0, x.Cmp(vectorInt(t, rfc5054Vector.x)), "x")

	clientKey, err := client.SessionKey()
	require.NoError(t, err)
	serverKey, err := server.SessionKey()
	require.NoError(t, err)

	premaster := vectorInt(t, rfc5054Vector.premaster)
	assert.Equal(t, 0, client.rawKey.Cmp(premaster), "client premaster secret")
	assert.Equal(t, 0, server.rawKey.Cmp(premaster), "server premaster secret")

	assert.Equal(t, clientKey, serverKey)
	assert.Len(t, clientKey, p.SessionKeyLength())
}

func runHandshake(t *testing.T, p *Params, password, actualPassword string) (*Session, *Session) {
	t.Helper()

	salt, v := testVerifier(t, p, "alice", actualPassword)

	client, err := NewClientSession(p, "alice", password)
	require.NoError(t, err)
	server, err := NewServerSession(p, "alice", salt, v)
	require.NoError(t, err)

	// salt, A, B cross the wire; the private values never do.
	serverSalt, err := server.Salt()
	require.NoError(t, err)
	require.NoError(t, client.SetSalt(serverSalt))

	A, err := client.PublicEphemeral()
	require.NoError(t, err)
	B, err := server.PublicEphemeral()
	require.NoError(t, err)

	require.NoError(t, client.SetPeerEphemeral(B))
	require.NoError(t, server.SetPeerEphemeral(A))

	return client, server
}

func TestHandshake_MutualAuthentication(t *testing.T) {
	tests := []struct {
		name  string
		group *Group
		hash  string
	}{
		{"1024/sha1", Group1024, "sha1"},
		{"2048/sha256", Group2048, "sha256"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyLength := (tt.group.Prime.BitLen() + 7) / 8
			p, err := NewParams(tt.group, tt.hash, keyLength, true)
			require.NoError(t, err)

			client, server := runHandshake(t, p, "password123", "password123")

			clientKey, err := client.SessionKey()
			require.NoError(t, err)
			serverKey, err := server.SessionKey()
			require.NoError(t, err)
			require.Equal(t, clientKey, serverKey, "both parties must derive the same key")
			assert.Len(t, clientKey, p.SessionKeyLength())

			clientProofs, err := client.ProofValidator()
			require.NoError(t, err)
			serverProofs, err := server.ProofValidator()
			require.NoError(t, err)

			m1, err := clientProofs.ClientProof()
			require.NoError(t, err)
			assert.True(t, serverProofs.VerifyClientProof(m1), "server must accept the client proof")

			m2, err := serverProofs.ServerProof()
			require.NoError(t, err)
			assert.True(t, clientProofs.VerifyServerProof(m2), "client must accept the server proof")
		})
	}
}

func TestHandshake_FreshEphemeralsChangeKey(t *testing.T) {
	p := testParams(t)

	first, _ := runHandshake(t, p, "password123", "password123")
	second, _ := runHandshake(t, p, "password123", "password123")

	k1, err := first.SessionKey()
	require.NoError(t, err)
	k2, err := second.SessionKey()
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2, "independent attempts must not share a key")
}

func TestHandshake_WrongPassword(t *testing.T) {
	p := testParams(t)

	client, server := runHandshake(t, p, "hunter2", "password123")

	clientKey, err := client.SessionKey()
	require.NoError(t, err)
	serverKey, err := server.SessionKey()
	require.NoError(t, err)
	require.NotEqual(t, clientKey, serverKey)

	clientProofs, err := client.ProofValidator()
	require.NoError(t, err)
	serverProofs, err := server.ProofValidator()
	require.NoError(t, err)

	m1, err := clientProofs.ClientProof()
	require.NoError(t, err)
	assert.False(t, serverProofs.VerifyClientProof(m1), "wrong password must never verify")

	m2, err := serverProofs.ServerProof()
	require.NoError(t, err)
	assert.False(t, clientProofs.VerifyServerProof(m2))
}
