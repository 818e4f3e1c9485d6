package payment

import (
	"errors"
	"strconv"
	"strings"
)

const referencePrefix = "lead"

// ErrIgnored: evento válido mas que não libera acesso (status não aprovado,
// tipo desconhecido). O webhook responde 200 sem conceder nada.
var ErrIgnored = errors.New("payment event ignored")

var ErrInvalidReference = errors.New("invalid lead reference")

// ErrInvalidSignature: o corpo não veio do provedor.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Confirmation é tudo o que o core precisa saber de um pagamento.
type Confirmation struct {
	ProfessionalID uint
	JobID          uint
	Provider       string
	Reference      string
}

// ExternalReference monta "lead:<professional_id>:<job_id>".
func ExternalReference(professionalID, jobID uint) string {
	return referencePrefix + ":" +
		strconv.FormatUint(uint64(professionalID), 10) + ":" +
		strconv.FormatUint(uint64(jobID), 10)
}

func ParseExternalReference(ref string) (professionalID, jobID uint, err error) {
	parts := strings.Split(strings.TrimSpace(ref), ":")
	if len(parts) != 3 || parts[0] != referencePrefix {
		return 0, 0, ErrInvalidReference
	}

	pro, err := parseID(parts[1])
	if err != nil {
		return 0, 0, err
	}
	job, err := parseID(parts[2])
	if err != nil {
		return 0, 0, err
	}
	return pro, job, nil
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || v == 0 {
		return 0, ErrInvalidReference
	}
	return uint(v), nil
}
