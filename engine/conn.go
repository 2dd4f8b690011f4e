package engine

import (
	"bytes"
	"crypto/cipher"
	"crypto/pbkdf2"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	keyIterations = 100000
	keySalt       = "padmap-link-v1"
	sessionInfo   = "padmap-session-v1"
	clientInfo    = sessionInfo + " client"
	serverInfo    = sessionInfo + " server"

	maxFrameSize = 64 * 1024
)

// DeriveKey stretches a link password into a 32 byte key.
func DeriveKey(password string) ([]byte, error) {
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	return pbkdf2.Key(sha256.New, password, []byte(keySalt), keyIterations, chacha20poly1305.KeySize)
}

var errFrameOrder = errors.New("frame out of order")

// sessionKeys mixes both handshake nonces into one key per direction:
// client to server first, then server to client.
func sessionKeys(key, clientNonce, serverNonce []byte) (c2s, s2c []byte, err error) {
	salt := append(append([]byte{}, clientNonce...), serverNonce...)
	derive := func(info string) ([]byte, error) {
		out := make([]byte, chacha20poly1305.KeySize)
		if _, err := io.ReadFull(hkdf.New(sha256.New, key, salt, []byte(info)), out); err != nil {
			return nil, err
		}
		return out, nil
	}
	if c2s, err = derive(clientInfo); err != nil {
		return nil, nil, err
	}
	if s2c, err = derive(serverInfo); err != nil {
		return nil, nil, err
	}
	return c2s, s2c, nil
}

// sealedConn frames every Write as length | nonce | ciphertext.
// The nonce carries a per direction counter; Read accepts only the next one.
type sealedConn struct {
	net.Conn

	wmu     sync.Mutex
	send    cipher.AEAD
	sendCtr uint64

	rmu     sync.Mutex
	recv    cipher.AEAD
	recvCtr uint64
	recvBuf bytes.Buffer
}

func sealConn(conn net.Conn, sendKey, recvKey []byte) (net.Conn, error) {
	send, err := chacha20poly1305.New(sendKey)
	if err != nil {
		return nil, err
	}
	recv, err := chacha20poly1305.New(recvKey)
	if err != nil {
		return nil, err
	}
	return &sealedConn{Conn: conn, send: send, recv: recv}, nil
}

func (c *sealedConn) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	frame := make([]byte, 4+chacha20poly1305.NonceSize, 4+chacha20poly1305.NonceSize+len(p)+c.send.Overhead())
	nonce := frame[4:]
	binary.BigEndian.PutUint64(nonce[4:], c.sendCtr)
	c.sendCtr++

	frame = c.send.Seal(frame, nonce, p, nil)
	binary.BigEndian.PutUint32(frame[:4], uint32(len(frame)-4))

	if _, err := c.Conn.Write(frame); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *sealedConn) Read(p []byte) (int, error) {
	c.rmu.Lock()
	defer c.rmu.Unlock()

	if c.recvBuf.Len() == 0 {
		var hdr [4]byte
		if _, err := io.ReadFull(c.Conn, hdr[:]); err != nil {
			return 0, err
		}
		n := binary.BigEndian.Uint32(hdr[:])
		if n < chacha20poly1305.NonceSize || n > maxFrameSize {
			return 0, io.ErrUnexpectedEOF
		}

		frame := make([]byte, n)
		if _, err := io.ReadFull(c.Conn, frame); err != nil {
			return 0, err
		}
		nonce := frame[:chacha20poly1305.NonceSize]
		if binary.BigEndian.Uint32(nonce[:4]) != 0 || binary.BigEndian.Uint64(nonce[4:]) != c.recvCtr {
			return 0, errFrameOrder
		}
		pt, err := c.recv.Open(nil, nonce, frame[chacha20poly1305.NonceSize:], nil)
		if err != nil {
			return 0, err
		}
		c.recvCtr++
		c.recvBuf.Write(pt)
	}
	return c.recvBuf.Read(p)
}
