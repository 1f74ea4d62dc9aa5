package repository

import (
	"context"

	constant "github.com/SeakMengs/CertVault/internal/constant"
	"github.com/SeakMengs/CertVault/internal/model"
	"gorm.io/gorm"
)

type CertificateRepository struct {
	*baseRepository
}

func (cr CertificateRepository) Create(ctx context.Context, tx *gorm.DB, cert *model.Certificate) (*model.Certificate, error) {
	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Certificate{}).Create(cert).Error; err != nil {
		return cert, err
	}

	return cert, nil
}

func (cr CertificateRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Certificate, error) {
	cr.logger.Debugf("Get certificate by id: %s", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var certificate model.Certificate
	if err := db.WithContext(ctx).Model(&model.Certificate{}).Where(model.Certificate{
		BaseModel: model.BaseModel{
			ID: id,
		},
	}).First(&certificate).Error; err != nil {
		return &certificate, err
	}

	return &certificate, nil
}

func (cr CertificateRepository) GetByBatchId(ctx context.Context, tx *gorm.DB, batchId string) ([]model.Certificate, error) {
	cr.logger.Debugf("Get certificates by batch id: %s", batchId)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var certificates []model.Certificate
	if err := db.WithContext(ctx).Model(&model.Certificate{}).Where(model.Certificate{
		BatchID: batchId,
	}).Order("created_at asc").Find(&certificates).Error; err != nil {
		return certificates, err
	}

	return certificates, nil
}

// Return certificates ordered newest first, and the total count.
func (cr CertificateRepository) GetAll(ctx context.Context, tx *gorm.DB, page, pageSize uint) ([]model.Certificate, int64, error) {
	cr.logger.Debugf("Get certificates page: %d, pageSize: %d", page, pageSize)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = constant.DefaultPageSize
	}

	var certificates []model.Certificate
	total := int64(0)

	if err := db.WithContext(ctx).Model(&model.Certificate{}).Count(&total).Error; err != nil {
		return certificates, total, err
	}

	query := db.WithContext(ctx).Model(&model.Certificate{}).Order("created_at desc")
	if err := query.Offset(int((page - 1) * pageSize)).Limit(int(pageSize)).Find(&certificates).Error; err != nil {
		return certificates, total, err
	}

	return certificates, total, nil
}
