package util

func GetAppName() string {
	return "CertVault"
}
