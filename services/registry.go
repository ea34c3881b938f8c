package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"lms/models"
	certModels "lms/models/certificate"
	"lms/utils"

	"gorm.io/gorm"
)

// IssueCertificate issues a certificate for (user, type, reference).
// Idempotent: an existing certificate is returned unchanged with no re-render
// and no duplicate email. A render or artifact-store failure aborts with no
// certificate row created; the caller keeps its completion marker and may
// retry.
func IssueCertificate(db *gorm.DB, userID uint, certType string, referenceID uint) (*certModels.Certificate, error) {
	credType, ok := credentialTypes[certType]
	if !ok {
		return nil, ErrUnknownType
	}

	// Primary defense against duplicate issuance: return the existing record
	var existing certModels.Certificate
	err := db.Where("user_id = ? AND type = ? AND reference_id = ?", userID, certType, referenceID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	title, err := credType.TitleOf(db, referenceID)
	if err != nil {
		return nil, err
	}

	certificateNo := utils.GenerateCertificateNumber()
	issuedAt := time.Now()

	tpl := ResolveTemplate(db, certType)
	assets := FetchTemplateAssets(tpl)

	pdfBytes, err := RenderCertificate(CertificateData{
		RecipientName:   user.Name,
		CredentialLabel: credType.Label,
		CredentialTitle: title,
		CertificateNo:   certificateNo,
		IssuedAt:        issuedAt,
	}, tpl, assets)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}

	artifactKey := fmt.Sprintf("%d/%s.pdf", userID, certificateNo)
	if _, err := utils.SaveArtifact(pdfBytes, artifactKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}

	cert := certModels.Certificate{
		UserID:         userID,
		Type:           certType,
		ReferenceID:    referenceID,
		CertificateNo:  certificateNo,
		CertificateURL: artifactKey,
		IssuedAt:       issuedAt,
		Status:         certModels.StatusGenerated,
	}

	if err := db.Create(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent issue won the race. Drop our artifact and return
			// the winner's record.
			if delErr := utils.DeleteArtifact(artifactKey); delErr != nil {
				log.Println("Failed to delete orphaned certificate artifact", artifactKey, ":", delErr)
			}
			var winner certModels.Certificate
			if err := db.Where("user_id = ? AND type = ? AND reference_id = ?", userID, certType, referenceID).
				First(&winner).Error; err != nil {
				return nil, err
			}
			return &winner, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}

	utils.SendCertificateEmail(user.Email, user.Name, title, certificateNo, utils.ArtifactURL(artifactKey))

	return &cert, nil
}

// RevokeCertificate sets a certificate's status to REVOKED. Revoking an
// already-revoked certificate is rejected, not silently ignored.
func RevokeCertificate(db *gorm.DB, id uint) (*certModels.Certificate, error) {
	var cert certModels.Certificate
	if err := db.First(&cert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if cert.Status == certModels.StatusRevoked {
		return nil, ErrInvalidState
	}

	cert.Status = certModels.StatusRevoked
	if err := db.Save(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

// RestoreCertificate sets a revoked certificate back to GENERATED
func RestoreCertificate(db *gorm.DB, id uint) (*certModels.Certificate, error) {
	var cert certModels.Certificate
	if err := db.First(&cert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if cert.Status != certModels.StatusRevoked {
		return nil, ErrInvalidState
	}

	cert.Status = certModels.StatusGenerated
	if err := db.Save(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

// DeleteCertificate removes the backing artifact (best-effort) and hard-deletes
// the certificate row. Irreversible.
func DeleteCertificate(db *gorm.DB, id uint) error {
	var cert certModels.Certificate
	if err := db.First(&cert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := utils.DeleteArtifact(cert.CertificateURL); err != nil {
		log.Println("Failed to delete certificate artifact", cert.CertificateURL, ":", err)
	}

	return db.Unscoped().Delete(&cert).Error
}

// RegenerateCertificate hard-deletes an existing certificate and issues a fresh
// one for the same (user, type, reference). The new certificate gets a new
// number.
func RegenerateCertificate(db *gorm.DB, id uint) (*certModels.Certificate, error) {
	var cert certModels.Certificate
	if err := db.First(&cert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := DeleteCertificate(db, id); err != nil {
		return nil, err
	}
	return IssueCertificate(db, cert.UserID, cert.Type, cert.ReferenceID)
}

// Verification holds the public verify-by-number result. A revoked certificate
// reports Valid=false with metadata so verifiers can distinguish "revoked"
// from "never existed".
type Verification struct {
	Valid           bool      `json:"valid"`
	CertificateNo   string    `json:"certificate_no"`
	RecipientName   string    `json:"recipient_name"`
	CredentialType  string    `json:"credential_type"`
	CredentialTitle string    `json:"credential_title"`
	IssuedAt        time.Time `json:"issued_at"`
}

// VerifyCertificate is the public, unauthenticated lookup by certificate
// number. Unknown numbers return ErrNotFound.
func VerifyCertificate(db *gorm.DB, certificateNo string) (*Verification, error) {
	var cert certModels.Certificate
	if err := db.Where("certificate_no = ?", certificateNo).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var recipientName string
	var user models.User
	if err := db.Select("name").Where("id = ?", cert.UserID).First(&user).Error; err == nil {
		recipientName = user.Name
	}

	title := ""
	if credType, ok := credentialTypes[cert.Type]; ok {
		if t, err := credType.TitleOf(db, cert.ReferenceID); err == nil {
			title = t
		}
	}

	return &Verification{
		Valid:           cert.Status == certModels.StatusGenerated,
		CertificateNo:   cert.CertificateNo,
		RecipientName:   recipientName,
		CredentialType:  cert.Type,
		CredentialTitle: title,
		IssuedAt:        cert.IssuedAt,
	}, nil
}
