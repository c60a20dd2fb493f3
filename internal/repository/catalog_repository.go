package repository

import (
	"corpready_backend/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListDomains() ([]model.Domain, error) {
	var domains []model.Domain
	err := r.DB.Order("name ASC").Find(&domains).Error
	return domains, err
}

func (r *CatalogRepository) FindDomainByID(id uint) (*model.Domain, error) {
	var domain model.Domain
	err := r.DB.Preload("Topics", func(db *gorm.DB) *gorm.DB {
		return db.Order("`topics`.`order` ASC")
	}).First(&domain, id).Error
	return &domain, err
}

func (r *CatalogRepository) ListTopics(domainID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("domain_id = ?", domainID).Order("`order` ASC").Find(&topics).Error
	return topics, err
}

func (r *CatalogRepository) FindTopicByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}

// FindOrCreateDomain 生成课程时按名字落库，已存在则复用
func (r *CatalogRepository) FindOrCreateDomain(name string) (*model.Domain, error) {
	var domain model.Domain
	err := r.DB.Where("name = ?", name).
		FirstOrCreate(&domain, model.Domain{Name: name}).Error
	return &domain, err
}

func (r *CatalogRepository) FindOrCreateTopic(domainID uint, name string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where("domain_id = ? AND name = ?", domainID, name).
		FirstOrCreate(&topic, model.Topic{DomainID: domainID, Name: name}).Error
	return &topic, err
}
