package bitrix

import (
	"context"
	"fmt"
	"strconv"
)

type Requisite struct {
	Id   string `json:"ID"`
	Inn  string `json:"RQ_INN"`
	Kpp  string `json:"RQ_KPP"`
	Ogrn string `json:"RQ_OGRN"`
}

type BankDetail struct {
	Id         string `json:"ID"`
	Bik        string `json:"RQ_BIK"`
	AccountNum string `json:"RQ_ACC_NUM"`
}

// GetRequisites returns the company's primary requisite record and, when
// one exists, the bank detail record keyed by the requisite's id. Either
// may be nil - a company without legal details is a normal state.
func (c *Client) GetRequisites(ctx context.Context, companyId int) (*Requisite, *BankDetail, error) {
	var requisites []Requisite
	if err := c.call(ctx, "crm.requisite.list", map[string]interface{}{
		"filter": map[string]string{"ENTITY_ID": strconv.Itoa(companyId)},
	}, &requisites); err != nil {
		return nil, nil, fmt.Errorf("an error occured getting company requisites: %w", err)
	}

	if len(requisites) == 0 {
		return nil, nil, nil
	}

	requisite := requisites[0]

	var banks []BankDetail
	if err := c.call(ctx, "crm.requisite.bankdetail.list", map[string]interface{}{
		"filter": map[string]string{"ID": requisite.Id},
	}, &banks); err != nil {
		return nil, nil, fmt.Errorf("an error occured getting bank details: %w", err)
	}

	if len(banks) == 0 {
		return &requisite, nil, nil
	}

	return &requisite, &banks[0], nil
}
