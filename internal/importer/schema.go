package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// StoreDump is an exported project store: every record keyed by its id.
type StoreDump struct {
	Projects map[string]ProjectRecord `json:"projects"`
}

// ProjectRecord is one pekerjaan as written by the store export.
type ProjectRecord struct {
	Code           string         `json:"kode"`
	Name           string         `json:"nama"`
	Client         string         `json:"klien"`
	JobType        string         `json:"jenisPekerjaan"`
	ContractNumber string         `json:"nomorKontrak"`
	ContractValue  int64          `json:"nilaiKontrak"`
	Location       string         `json:"lokasi"`
	StartDate      string         `json:"tanggalMulai"`
	EndDate        string         `json:"tanggalSelesai,omitempty"`
	Status         string         `json:"status"`
	Progress       float64        `json:"progress,omitempty"`
	TenderSource   string         `json:"sumber,omitempty"`
	TenderNumber   string         `json:"nomorTender,omitempty"`
	TenderAgency   string         `json:"instansi,omitempty"`
	Archived       bool           `json:"arsip,omitempty"`
	Stages         []StageRecord  `json:"tahapan"`
	Budget         []BudgetRecord `json:"anggaran"`
}

type StageRecord struct {
	ID                  string   `json:"id"`
	Number              int      `json:"nomor"`
	Name                string   `json:"nama"`
	Weight              float64  `json:"bobot"`
	Status              string   `json:"status,omitempty"`
	StartDate           string   `json:"tanggalMulai,omitempty"`
	EndDate             string   `json:"tanggalSelesai,omitempty"`
	InvoiceDate         string   `json:"tanggalInvoice,omitempty"`
	ExpectedInvoiceDate string   `json:"perkiraanInvoiceMasuk,omitempty"`
	InvoiceAmount       *int64   `json:"jumlahTagihanInvoice,omitempty"`
	PaymentStatus       string   `json:"statusPembayaran,omitempty"`
	Files               []string `json:"files,omitempty"`
}

type BudgetRecord struct {
	ID          string   `json:"id"`
	StageID     string   `json:"tahapanId,omitempty"`
	Category    string   `json:"kategori,omitempty"`
	Description string   `json:"deskripsi"`
	Planned     int64    `json:"jumlah"`
	Realized    int64    `json:"realisasi"`
	Files       []string `json:"files,omitempty"`
}

// LoadStoreDump reads and parses a store dump JSON file.
func LoadStoreDump(path string) (*StoreDump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseStoreDump(data)
}

func ParseStoreDump(data []byte) (*StoreDump, error) {
	var dump StoreDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &dump, nil
}

// IDs returns the record ids in sorted order so imports are deterministic.
func (d *StoreDump) IDs() []string {
	ids := make([]string, 0, len(d.Projects))
	for id := range d.Projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
