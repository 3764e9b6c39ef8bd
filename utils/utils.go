package utils

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// LogoMaxDim bounds the stored company logo. Labels and report headers
// never need more pixels than this.
const LogoMaxDim = 512

// SaveLogo decodes an uploaded logo, scales it down to fit LogoMaxDim
// and writes the normalised image to dst. The format follows the dst
// extension.
func SaveLogo(fileHeader *multipart.FileHeader, dst string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return errors.New("logo must be a valid PNG or JPEG image")
	}

	thumb := imaging.Fit(img, LogoMaxDim, LogoMaxDim, imaging.Lanczos)
	return imaging.Save(thumb, dst)
}

// ValidateLogoExt accepts only the image formats the label renderer can
// embed. Returns the lowercased extension.
func ValidateLogoExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg":
		return ext, nil
	default:
		return "", errors.New("logo must be PNG or JPEG")
	}
}
