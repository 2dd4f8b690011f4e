package engine

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net"
)

const (
	handshakeMagic = "PMAP1\x00"
	handshakeOK    = "OK\x00"
	nonceSize      = 32
	authContext    = "padmap-auth-v1"
)

// ErrUnauthorized is returned by Accept when the client proved a different
// password.
var ErrUnauthorized = errors.New("invalid link password")

func clientProof(key, nonce []byte) []byte {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(authContext))
	_, _ = mac.Write(nonce)
	return mac.Sum(nil)
}

// clientHandshake sends magic | nonce | proof and expects OK | server nonce.
func clientHandshake(rw io.ReadWriter, key []byte) (clientNonce, serverNonce []byte, err error) {
	clientNonce = make([]byte, nonceSize)
	if _, err := rand.Read(clientNonce); err != nil {
		return nil, nil, fmt.Errorf("generate client nonce: %w", err)
	}

	msg := append([]byte(handshakeMagic), clientNonce...)
	msg = append(msg, clientProof(key, clientNonce)...)
	if _, err := rw.Write(msg); err != nil {
		return nil, nil, fmt.Errorf("write handshake: %w", err)
	}

	resp := make([]byte, len(handshakeOK)+nonceSize)
	if _, err := io.ReadFull(rw, resp); err != nil {
		return nil, nil, fmt.Errorf("read handshake response: %w", err)
	}
	if !bytes.HasPrefix(resp, []byte(handshakeOK)) {
		return nil, nil, fmt.Errorf("invalid handshake response %q", resp[:len(handshakeOK)])
	}
	return clientNonce, resp[len(handshakeOK):], nil
}

// serverHandshake checks the client's proof and answers with its own nonce.
func serverHandshake(rw io.ReadWriter, key []byte) (clientNonce, serverNonce []byte, err error) {
	msg := make([]byte, len(handshakeMagic)+nonceSize+sha256.Size)
	if _, err := io.ReadFull(rw, msg); err != nil {
		return nil, nil, fmt.Errorf("read handshake: %w", err)
	}
	if string(msg[:len(handshakeMagic)]) != handshakeMagic {
		return nil, nil, errors.New("handshake: bad magic")
	}
	clientNonce = msg[len(handshakeMagic) : len(handshakeMagic)+nonceSize]
	if !hmac.Equal(msg[len(handshakeMagic)+nonceSize:], clientProof(key, clientNonce)) {
		return nil, nil, ErrUnauthorized
	}

	serverNonce = make([]byte, nonceSize)
	if _, err := rand.Read(serverNonce); err != nil {
		return nil, nil, fmt.Errorf("generate server nonce: %w", err)
	}
	if _, err := rw.Write(append([]byte(handshakeOK), serverNonce...)); err != nil {
		return nil, nil, fmt.Errorf("write handshake response: %w", err)
	}
	return clientNonce, serverNonce, nil
}

// secure runs the handshake on conn and returns the sealed connection.
func secure(conn net.Conn, password string, client bool) (net.Conn, error) {
	key, err := DeriveKey(password)
	if err != nil {
		return nil, err
	}
	var cn, sn []byte
	if client {
		cn, sn, err = clientHandshake(conn, key)
	} else {
		cn, sn, err = serverHandshake(conn, key)
	}
	if err != nil {
		return nil, err
	}
	c2s, s2c, err := sessionKeys(key, cn, sn)
	if err != nil {
		return nil, err
	}
	if client {
		return sealConn(conn, c2s, s2c)
	}
	return sealConn(conn, s2c, c2s)
}

const (
	passwordLength = 16
	base62         = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// GeneratePassword returns a random 16 character base62 link password.
func GeneratePassword() (string, error) {
	b := make([]byte, passwordLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = base62[int(b[i])%len(base62)]
	}
	return string(b), nil
}
