package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nxtsync/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCertificateID(t *testing.T) {
	id := NewCertificateID()
	assert.True(t, strings.HasPrefix(id, "CERT-"), "got %q", id)
}

func TestGenerateCertificate(t *testing.T) {
	dir := t.TempDir()
	config.AppConfig = &config.Config{
		BaseURL:        "http://localhost:5000",
		PublicDir:      dir,
		CertificateDir: filepath.Join(dir, "certificates"),
	}

	certificateID := NewCertificateID()
	url, err := GenerateCertificate(CertificateData{
		StudentName:      "Jane Student",
		CourseName:       "Full Stack Web Development",
		Duration:         "6 Months",
		Date:             time.Now(),
		CertificateID:    certificateID,
		VerificationCode: "ABCD1234",
	})
	require.NoError(t, err)

	assert.Equal(t, "/certificates/CERT-"+certificateID+".pdf", url)

	content, err := os.ReadFile(CertificateFilePath(url))
	require.NoError(t, err)
	assert.True(t, len(content) > 0)
	assert.True(t, strings.HasPrefix(string(content[:4]), "%PDF"), "output must be a PDF document")
}
