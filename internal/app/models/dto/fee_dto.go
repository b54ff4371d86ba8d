package dto

import (
	"github.com/shopspring/decimal"

	"github.com/schoolbill/backend/internal/app/models"
)

// CreateFeeTypeRequest represents a request to create a fee type
type CreateFeeTypeRequest struct {
	Name string `json:"name" binding:"required" example:"tuition"`
}

// UpdateFeeTypeRequest represents a request to rename a fee type
type UpdateFeeTypeRequest struct {
	Name string `json:"name" binding:"required" example:"tuition"`
}

// FeeTypeResponse represents a fee type in API responses
type FeeTypeResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"tuition"`
}

// FromFeeType converts a models.FeeType to a FeeTypeResponse
func FromFeeType(ft *models.FeeType) FeeTypeResponse {
	if ft == nil {
		return FeeTypeResponse{}
	}
	return FeeTypeResponse{ID: ft.ID, Name: ft.Name}
}

// CreateFeeStructureRequest represents a request to create a fee structure
type CreateFeeStructureRequest struct {
	ClassID      int64           `json:"classId" binding:"required" example:"1"`
	FeeTypeID    int64           `json:"feeTypeId" binding:"required" example:"1"`
	Amount       decimal.Decimal `json:"amount" binding:"required" example:"5000.00"`
	Frequency    string          `json:"frequency" binding:"required" example:"monthly" enums:"monthly,annual,one-time"`
	AcademicYear string          `json:"academicYear" binding:"required" example:"2024-2025"`
}

// UpdateFeeStructureRequest represents a request to update a fee structure
type UpdateFeeStructureRequest struct {
	ClassID      int64           `json:"classId" binding:"required" example:"1"`
	FeeTypeID    int64           `json:"feeTypeId" binding:"required" example:"1"`
	Amount       decimal.Decimal `json:"amount" binding:"required" example:"5000.00"`
	Frequency    string          `json:"frequency" binding:"required" example:"monthly" enums:"monthly,annual,one-time"`
	AcademicYear string          `json:"academicYear" binding:"required" example:"2024-2025"`
}

// FeeStructureResponse represents a fee structure in API responses
type FeeStructureResponse struct {
	ID           int64           `json:"id" example:"1"`
	ClassID      int64           `json:"classId" example:"1"`
	FeeTypeID    int64           `json:"feeTypeId" example:"1"`
	FeeTypeName  string          `json:"feeTypeName,omitempty" example:"tuition"`
	Amount       decimal.Decimal `json:"amount" example:"5000.00"`
	Frequency    string          `json:"frequency" example:"monthly"`
	AcademicYear string          `json:"academicYear" example:"2024-2025"`
}

// FromFeeStructure converts a models.FeeStructure to a FeeStructureResponse
func FromFeeStructure(fs *models.FeeStructure) FeeStructureResponse {
	if fs == nil {
		return FeeStructureResponse{}
	}
	resp := FeeStructureResponse{
		ID:           fs.ID,
		ClassID:      fs.ClassID,
		FeeTypeID:    fs.FeeTypeID,
		Amount:       fs.Amount,
		Frequency:    string(fs.Frequency),
		AcademicYear: fs.AcademicYear,
	}
	if fs.FeeType != nil {
		resp.FeeTypeName = fs.FeeType.Name
	}
	return resp
}
