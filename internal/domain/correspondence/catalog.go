package correspondence

// LetterType is a catalog entry naming a kind of letter by its numeric code.
type LetterType struct {
	Code string
	Name string
}

// Division is a catalog entry naming an organizational division.
type Division struct {
	Code string
	Name string
}

// Organization defaults applied to letters that do not name their own sender or signer.
const (
	DefaultSender     = "AYS Indonesia"
	DefaultSigner     = "M. Abrar Siregar"
	DefaultSignerRole = "Founder AYS Indonesia"
)

// DefaultLetterTypes returns the seeded letter-type catalog.
func DefaultLetterTypes() []LetterType {
	return []LetterType{
		{Code: "01", Name: "Surat Keputusan"},
		{Code: "02", Name: "Surat Undangan"},
		{Code: "03", Name: "Surat Permohonan"},
		{Code: "04", Name: "Surat Pemberitahuan"},
		{Code: "05", Name: "Surat Peminjaman"},
		{Code: "06", Name: "Surat Pernyataan"},
		{Code: "07", Name: "Surat Mandat"},
		{Code: "08", Name: "Surat Tugas"},
		{Code: "09", Name: "Surat Keterangan"},
		{Code: "10", Name: "Surat Rekomendasi"},
		{Code: "11", Name: "Surat Balasan"},
		{Code: "12", Name: "Surat Perintah Perjalanan Dinas"},
		{Code: "13", Name: "Sertifikat"},
		{Code: "14", Name: "Perjanjian Kerja Sama"},
		{Code: "15", Name: "Surat Pengantar"},
		{Code: "16", Name: "Kwitansi"},
		{Code: "17", Name: "BAST"},
	}
}

// DefaultDivisions returns the seeded division catalog.
func DefaultDivisions() []Division {
	return []Division{
		{Code: "RIN", Name: "Riset dan Inovasi"},
		{Code: "LIH", Name: "Lingkungan dan Ekonomi Kreatif"},
		{Code: "DIS", Name: "Pendidikan dan Kesehatan"},
		{Code: "MKR", Name: "Media dan Kreatif"},
		{Code: "EKS", Name: "Kemitraan dan Hubungan Eksternal"},
		{Code: "SDK", Name: "SDM dan Keanggotaan"},
		{Code: "MBN", Name: "MOU BNN"},
		{Code: "KLR", Name: "Kaltimtara"},
		{Code: "ECH", Name: "ECo Chic"},
	}
}
