package route

import (
	"github.com/SeakMengs/CertVault/internal/controller"
	"github.com/gin-gonic/gin"
)

// Verification is public: anyone holding a certificate code can check it.
func Verify(r *gin.RouterGroup, vc *controller.VerifyController) {
	r.GET("/verify/:certificateId", vc.VerifyCertificate)
}
