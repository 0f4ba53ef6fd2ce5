package dto

import (
	schoolModel "sciedu_backend/internals/features/school/schools/model"
)

type CreateSchoolRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

func (r CreateSchoolRequest) ToModel() schoolModel.SchoolModel {
	return schoolModel.SchoolModel{
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone,
		Email:   r.Email,
	}
}

type UpdateSchoolRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
}
