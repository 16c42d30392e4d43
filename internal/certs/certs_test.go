package certs

import (
	"crypto/tls"
	"crypto/x509"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfSigned(t *testing.T) {
	cert, err := SelfSigned(Options{Hosts: []string{"shop.local", "192.168.1.20"}, Validity: time.Hour})
	require.NoError(t, err)
	require.NotEmpty(t, cert.Certificate)

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"shop.local"}, leaf.DNSNames)
	require.Len(t, leaf.IPAddresses, 1)
	assert.Equal(t, "192.168.1.20", leaf.IPAddresses[0].String())
	assert.Equal(t, "shop.local", leaf.Subject.CommonName)
	assert.WithinDuration(t, time.Now().Add(time.Hour), leaf.NotAfter, time.Minute)
}

func TestDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.Equal(t, []string{"localhost", "127.0.0.1", "::1"}, opts.Hosts)
	assert.Equal(t, 365*24*time.Hour, opts.Validity)
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")

	require.NoError(t, WriteFiles(certFile, keyFile, Options{}))

	_, err := tls.LoadX509KeyPair(certFile, keyFile)
	assert.NoError(t, err)
}
