// Command gencert writes a self-signed certificate for server.tls.cert_file
// and server.tls.key_file.
package main

import (
	"flag"
	"strings"
	"time"

	"go.uber.org/zap"

	"framestudio/internal/certs"
)

func main() {
	certFile := flag.String("cert", "cert.pem", "certificate output path")
	keyFile := flag.String("key", "key.pem", "private key output path")
	hosts := flag.String("hosts", "localhost,127.0.0.1,::1", "comma separated DNS names and IPs")
	days := flag.Int("days", 365, "validity in days")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	opts := certs.Options{
		Hosts:    strings.Split(*hosts, ","),
		Validity: time.Duration(*days) * 24 * time.Hour,
	}
	if err := certs.WriteFiles(*certFile, *keyFile, opts); err != nil {
		logger.Fatal("certificate not written", zap.Error(err))
	}
	logger.Info("certificate written", zap.String("cert", *certFile), zap.String("key", *keyFile))
}
