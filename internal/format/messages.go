package format

import (
	"fmt"
	"strings"
)

// Fixed reply texts. Plain-text replies carry the panel's Indonesian wording;
// MarkdownV2 templates pre-escape their own static punctuation and receive
// dynamic values through EscapeMarkdownV2 only.
const (
	MsgNotLoggedIn    = "⚠️ Anda belum login! Gunakan /login untuk masuk."
	MsgEmailPrompt    = "Silakan kirim email Anda untuk login."
	MsgEmailInvalid   = "⚠️ Email tidak valid! Masukkan email yang benar."
	MsgPasswordPrompt = "Sekarang kirimkan password Anda."
	MsgLoginFailed    = "❌ Login gagal! Email atau password salah."
	MsgLoginError     = "⚠️ Terjadi kesalahan saat login. Silakan coba lagi nanti."
	MsgNoProducts     = "⚠️ Tidak ada kuota tersedia saat ini."
	MsgProductsError  = "⚠️ Terjadi kesalahan saat mengambil data kuota."
	MsgBuyUsage       = "❌ Format salah! Gunakan: /buy <id_produk> <nomor_pelanggan>"
	MsgBuyError       = "⚠️ Terjadi kesalahan saat memproses pembelian."
	MsgUnknownCommand = "Perintah tidak dikenali. Gunakan /start untuk melihat daftar perintah."
	MsgInternalError  = "⚠️ Terjadi kesalahan. Silakan coba lagi nanti."
)

// Product is the display view of a purchasable package.
type Product struct {
	ID    string
	Name  string
	Price int64
	Quota string
}

// Welcome renders the /start greeting. MarkdownV2.
func Welcome(name string) string {
	return fmt.Sprintf(
		"Halo, %s\\! Selamat datang di EXPIRED\\.\n\n"+
			"📌 Dokumentasi Perintah:\n"+
			"🎁 /login \\- Untuk login akun panel\n"+
			"🎁 /show\\_profile \\- Informasi akun panel\n"+
			"🎁 /show\\_balance \\- Informasi saldo akun panel\n"+
			"🎁 /show\\_product \\- List kuota",
		EscapeMarkdownV2(name))
}

// LoginSuccess renders the post-login confirmation. Plain text.
func LoginSuccess(name string) string {
	return fmt.Sprintf("✅ Login berhasil! Selamat datang, %s!", name)
}

// Profile renders the cached account profile. MarkdownV2.
func Profile(id, email, name string) string {
	return fmt.Sprintf(
		"👤 *Profil Anda:*\n"+
			"🆔 *ID:* %s\n"+
			"📧 *Email:* %s\n"+
			"👤 *Nama:* %s",
		EscapeMarkdownV2(id), EscapeMarkdownV2(email), EscapeMarkdownV2(name))
}

// Balance renders the cached balance. MarkdownV2.
func Balance(balance int64) string {
	return fmt.Sprintf("💰 *Saldo Anda:* %s 💳", EscapeMarkdownV2(Currency(balance)))
}

// ProductList renders the catalog with the caller's balance on top and the
// purchase instructions below. Products sharing a (name, quota) pair are
// listed once, first occurrence wins. MarkdownV2.
func ProductList(balance int64, products []Product) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("💰 *Saldo Anda:* %s 💳\n\n📦 Daftar Kuota Tersedia:\n\n",
		EscapeMarkdownV2(Currency(balance))))

	seen := make(map[string]struct{}, len(products))
	n := 0
	for _, p := range products {
		key := p.Name + "-" + p.Quota
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		n++
		b.WriteString(fmt.Sprintf(
			"🔹 %d\\. *%s*\n"+
				"💰 Harga: %s 💳\n"+
				"📦 Size Quota: %s 💳\n"+
				"🆔 ID Product: %s\n"+
				"➖➖➖➖➖➖➖➖➖➖\n",
			n,
			EscapeMarkdownV2(p.Name),
			EscapeMarkdownV2(Currency(p.Price)),
			EscapeMarkdownV2(p.Quota),
			EscapeMarkdownV2(p.ID)))
	}

	b.WriteString(
		"\n🛒 *Cara Membeli Produk:*\n" +
			"1️⃣ Ketik perintah berikut:\n" +
			"`/buy <id_produk> <nomor_pelanggan>`\n\n" +
			"📌 Contoh: `/buy 123456 081234567890`\n" +
			"⚠️ Pastikan saldo mencukupi sebelum melakukan pembelian\\.")

	return b.String()
}

// BuySuccess renders a completed purchase with the fresh balance reported by
// the backend. Plain text.
func BuySuccess(newBalance string) string {
	return fmt.Sprintf("✅ Pembelian berhasil!\n💰 Saldo terbaru: %s", newBalance)
}

// BuyRejected renders a purchase the backend refused. Plain text.
func BuyRejected(reason string) string {
	return fmt.Sprintf("❌ Gagal membeli produk: %s", reason)
}
