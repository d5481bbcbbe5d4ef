package sync

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/systemcrm/bitrix-planfix-sync/internal/bitrix"
	"github.com/systemcrm/bitrix-planfix-sync/internal/planfix"
)

// bitrixStub plays the Bitrix portal: REST methods under the webhook path
// plus file downloads under /disk/.
type bitrixStub struct {
	t *testing.T

	deal       map[string]interface{}
	dealAbsent bool

	contact     map[string]interface{}
	contactFail bool
	company     map[string]interface{}
	users       []map[string]interface{}
	address     []map[string]interface{}
	requisites  []map[string]interface{}
	bankDetails []map[string]interface{}

	// path -> file body; ServeMux-free so arbitrary query strings work
	files map[string]string
}

func (b *bitrixStub) handler() http.HandlerFunc {
	writeResult := func(w http.ResponseWriter, result interface{}) {
		require.NoError(b.t, json.NewEncoder(w).Encode(map[string]interface{}{"result": result}))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if body, ok := b.files[r.URL.Path]; ok {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, body))
			_, _ = w.Write([]byte(body))
			return
		}

		switch r.URL.Path {
		case "/crm.deal.get.json":
			if b.dealAbsent {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error": "NOT_FOUND", "error_description": "Not found"}`))
				return
			}
			writeResult(w, b.deal)
		case "/crm.contact.get.json":
			if b.contactFail {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			writeResult(w, b.contact)
		case "/crm.company.get.json":
			writeResult(w, b.company)
		case "/user.get.json":
			writeResult(w, b.users)
		case "/crm.address.list.json":
			writeResult(w, b.address)
		case "/crm.requisite.list.json":
			writeResult(w, b.requisites)
		case "/crm.requisite.bankdetail.list.json":
			writeResult(w, b.bankDetails)
		default:
			b.t.Errorf("unexpected bitrix path %s", r.URL.Path)
		}
	}
}

// planfixStub records every write the pipeline performs so tests can assert
// on exact payloads.
type planfixStub struct {
	t *testing.T

	contactByPhone map[string]int
	companyByName  map[string]int
	companyByTaxId map[string]int
	userByEmail    map[string]int

	failUploads map[string]bool
	failTasks   bool

	lookupTypes     []int
	uploadedFiles   []string
	createdContacts []planfix.ContactPostBody
	createdTasks    []planfix.TaskPostBody
	taskAttempts    int
}

func (p *planfixStub) handler() http.HandlerFunc {
	writeId := func(w http.ResponseWriter, id int) {
		_, _ = w.Write([]byte(fmt.Sprintf(`{"result": "success", "id": %d}`, id)))
	}

	contactsResult := func(w http.ResponseWriter, id int) {
		if id == 0 {
			_, _ = w.Write([]byte(`{"result": "success", "contacts": []}`))
			return
		}
		_, _ = w.Write([]byte(fmt.Sprintf(`{"result": "success", "contacts": [{"id": %d}]}`, id)))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contact/list":
			body := planfix.ListRequest{}
			require.NoError(p.t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(p.t, body.Filters, 1)

			filter := body.Filters[0]
			p.lookupTypes = append(p.lookupTypes, filter.Type)
			value, _ := filter.Value.(string)

			switch filter.Type {
			case planfix.FilterContactPhone:
				contactsResult(w, p.contactByPhone[value])
			case planfix.FilterContactName:
				contactsResult(w, p.companyByName[value])
			case planfix.FilterContactCustom:
				contactsResult(w, p.companyByTaxId[value])
			default:
				p.t.Errorf("unexpected contact filter type %d", filter.Type)
			}
		case "/contact/":
			body := planfix.ContactPostBody{}
			require.NoError(p.t, json.NewDecoder(r.Body).Decode(&body))
			p.createdContacts = append(p.createdContacts, body)
			writeId(w, 600+len(p.createdContacts))
		case "/task/":
			p.taskAttempts++
			if p.failTasks {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			body := planfix.TaskPostBody{}
			require.NoError(p.t, json.NewDecoder(r.Body).Decode(&body))
			p.createdTasks = append(p.createdTasks, body)
			writeId(w, 1000+len(p.createdTasks))
		case "/user/list":
			body := planfix.ListRequest{}
			require.NoError(p.t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(p.t, body.Filters, 1)
			email, _ := body.Filters[0].Value.(string)

			if id := p.userByEmail[email]; id != 0 {
				_, _ = w.Write([]byte(fmt.Sprintf(`{"result": "success", "users": [{"id": %d}]}`, id)))
				return
			}
			_, _ = w.Write([]byte(`{"result": "success", "users": []}`))
		case "/file/":
			require.NoError(p.t, r.ParseMultipartForm(1<<20))
			_, header, err := r.FormFile("file")
			require.NoError(p.t, err)

			if p.failUploads[header.Filename] {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			p.uploadedFiles = append(p.uploadedFiles, header.Filename)
			writeId(w, 5000+len(p.uploadedFiles))
		default:
			p.t.Errorf("unexpected planfix path %s", r.URL.Path)
		}
	}
}

const testDefaultAssigneeId = 5

func newTestClient(t *testing.T, b *bitrixStub, p *planfixStub) *Client {
	t.Helper()

	b.t, p.t = t, t
	bSrv := httptest.NewServer(b.handler())
	pSrv := httptest.NewServer(p.handler())
	t.Cleanup(bSrv.Close)
	t.Cleanup(pSrv.Close)

	cfg := &Config{
		Bitrix: BitrixCfg{Creds: bitrix.Creds{
			WebhookUrl:    bSrv.URL,
			AdminLogin:    "admin@example.com",
			AdminPassword: "secret",
		}},
		Planfix: PlanfixCfg{
			Creds:             planfix.Creds{ApiUrl: pSrv.URL, AuthToken: "tok"},
			DefaultAssigneeId: testDefaultAssigneeId,
		},
	}

	return &Client{
		BitrixClient:  bitrix.NewClient(cfg.Bitrix.Creds, bSrv.Client()),
		PlanfixClient: planfix.NewClient(cfg.Planfix.Creds, pSrv.Client()),
		Cfg:           cfg,
		Mapping:       NewDefaultMapping(),
	}
}
