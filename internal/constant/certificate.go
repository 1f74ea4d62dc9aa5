package constant

// CertificateStatus is stored as text on the certificate row. Issuance only
// ever writes CertificateStatusValid; revocation is an administrative action
// outside this service.
type CertificateStatus string

const (
	CertificateStatusValid   CertificateStatus = "valid"
	CertificateStatusRevoked CertificateStatus = "revoked"
)
