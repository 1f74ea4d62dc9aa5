package route

import (
	"github.com/SeakMengs/CertVault/internal/controller"
	"github.com/SeakMengs/CertVault/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Certificates(r *gin.RouterGroup, cc *controller.CertificateController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/certificates")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.POST("", cc.IngestBatch)
		v1.GET("", cc.GetCertificates)
		v1.GET("/:certificateId/download", cc.DownloadCertificate)
		v1.GET("/batch/:batchId/download", cc.DownloadBatchZip)
		v1.GET("/batch/:batchId/merge", cc.DownloadBatchMerged)
	}
}
