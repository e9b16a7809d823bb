package postgres

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/querypro-backend/internal/domain/dynamic"
)

// produtoModel é um model de teste dedicado: exercita o renderizador com
// colunas de vários tipos sem depender do schema de usuários
type produtoModel struct {
	ID    uint `gorm:"primaryKey"`
	Name  string
	Price float64
	Stock int
	Tag   *string
}

func (produtoModel) TableName() string {
	return "produtos"
}

var produtoSchema = dynamic.Schema{
	"name":  {Column: "name", Attr: "Name", Kind: dynamic.KindString},
	"price": {Column: "price", Attr: "Price", Kind: dynamic.KindFloat},
	"stock": {Column: "stock", Attr: "Stock", Kind: dynamic.KindInt},
	"tag":   {Column: "tag", Attr: "Tag", Kind: dynamic.KindString},
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("falha ao abrir sqlite em memória: %v", err)
	}
	if err := db.AutoMigrate(&produtoModel{}); err != nil {
		t.Fatalf("falha ao migrar: %v", err)
	}

	promo := "promo"
	seed := []produtoModel{
		{Name: "Teclado", Price: 120.0, Stock: 5, Tag: &promo},
		{Name: "Mouse", Price: 80.0, Stock: 10},
		{Name: "Monitor", Price: 900.0, Stock: 2, Tag: &promo},
		{Name: "mousepad", Price: 30.0, Stock: 50},
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("falha ao popular: %v", err)
	}

	return db
}

func buscar(t *testing.T, db *gorm.DB, q dynamic.Query) []produtoModel {
	t.Helper()

	compiled, err := dynamic.Compile(q, produtoSchema)
	if err != nil {
		t.Fatalf("compilação falhou: %v", err)
	}

	query := db.Model(&produtoModel{})
	query, err = applyDynamicFilter(query, compiled)
	if err != nil {
		t.Fatalf("renderização falhou: %v", err)
	}
	query = applyDynamicOrder(query, compiled)

	var out []produtoModel
	if err := query.Find(&out).Error; err != nil {
		t.Fatalf("consulta falhou: %v", err)
	}
	return out
}

func nomes(items []produtoModel) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestApplyDynamicFilter(t *testing.T) {
	db := setupTestDB(t)

	t.Run("gte empurra a comparação para o banco", func(t *testing.T) {
		v := "100"
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "price", Operator: "gte", Value: &v}})
		if len(out) != 2 {
			t.Errorf("esperava Teclado e Monitor, obteve %v", nomes(out))
		}
	})

	t.Run("between é inclusivo nos dois limites", func(t *testing.T) {
		v := "5,10"
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "stock", Operator: "between", Value: &v}})
		if len(out) != 2 {
			t.Errorf("esperava estoque 5 e 10, obteve %v", nomes(out))
		}
	})

	t.Run("contains sem case sensitivity usa dobra de caixa", func(t *testing.T) {
		v := "MOUSE"
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "name", Operator: "contains", Value: &v}})
		if len(out) != 2 {
			t.Errorf("esperava Mouse e mousepad, obteve %v", nomes(out))
		}
	})

	t.Run("doesnotcontain nega o teste de substring", func(t *testing.T) {
		v := "mouse"
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "name", Operator: "doesnotcontain", Value: &v}})
		if len(out) != 2 {
			t.Errorf("esperava Teclado e Monitor, obteve %v", nomes(out))
		}
	})

	t.Run("doesnotcontain inclui linhas com a coluna nula", func(t *testing.T) {
		// NOT LIKE sobre coluna nula avalia para NULL no SQL; o render
		// precisa do IS NULL para alinhar com o avaliador em memória
		v := "promo"
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "tag", Operator: "doesnotcontain", Value: &v}})
		got := nomes(out)
		if len(got) != 2 || got[0] != "Mouse" || got[1] != "mousepad" {
			t.Errorf("esperava Mouse e mousepad sem tag, obteve %v", got)
		}
	})

	t.Run("curingas no valor casam literalmente", func(t *testing.T) {
		extra := []produtoModel{
			{Name: "Desconto 10%", Price: 10.0, Stock: 1},
			{Name: "Desconto 100", Price: 10.0, Stock: 1},
		}
		if err := db.Create(&extra).Error; err != nil {
			t.Fatalf("falha ao popular: %v", err)
		}
		t.Cleanup(func() {
			db.Where("name LIKE ?", "Desconto%").Delete(&produtoModel{})
		})

		v := "10%"
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "name", Operator: "contains", Value: &v}})
		if len(out) != 1 || out[0].Name != "Desconto 10%" {
			t.Errorf("esperava apenas Desconto 10%%, obteve %v", nomes(out))
		}
	})

	t.Run("isnull e isnotnull viram testes de nulidade", func(t *testing.T) {
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "tag", Operator: "isnull"}})
		if len(out) != 2 {
			t.Errorf("esperava Mouse e mousepad, obteve %v", nomes(out))
		}

		out = buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "tag", Operator: "isnotnull"}})
		if len(out) != 2 {
			t.Errorf("esperava Teclado e Monitor, obteve %v", nomes(out))
		}
	})

	t.Run("in vira teste de pertencimento", func(t *testing.T) {
		v := "5, 50"
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "stock", Operator: "in", Value: &v}})
		if len(out) != 2 {
			t.Errorf("esperava Teclado e mousepad, obteve %v", nomes(out))
		}
	})

	t.Run("árvore aninhada com or combina no banco", func(t *testing.T) {
		alto := "500"
		muito := "20"
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{
			Field: "price", Operator: "gte", Value: &alto,
			Logic: dynamic.LogicOr,
			Filters: []dynamic.Filter{
				{Field: "stock", Operator: "gte", Value: &muito},
			},
		}})
		if len(out) != 2 {
			t.Errorf("esperava Monitor e mousepad, obteve %v", nomes(out))
		}
	})

	t.Run("erro estrutural retorna antes de tocar o banco", func(t *testing.T) {
		v := "5"
		_, err := dynamic.Compile(dynamic.Query{
			Filter: &dynamic.Filter{Field: "stock", Operator: "between", Value: &v},
		}, produtoSchema)
		if err == nil {
			t.Fatal("esperava erro estrutural para between com um limite")
		}
		if !dynamic.IsStructural(err) {
			t.Errorf("esperava erro estrutural, obteve %T: %v", err, err)
		}
	})
}

func TestApplyDynamicFilterCaseSensitive(t *testing.T) {
	db := setupTestDB(t)

	// O LIKE do sqlite é insensível a caixa por padrão; o pragma o
	// aproxima do comportamento do LIKE no Postgres
	if err := db.Exec("PRAGMA case_sensitive_like = ON").Error; err != nil {
		t.Fatalf("falha ao ativar case_sensitive_like: %v", err)
	}

	t.Run("contains com caseSensitive preserva a caixa no banco", func(t *testing.T) {
		v := "Mouse"
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "name", Operator: "contains", Value: &v, CaseSensitive: true}})
		if len(out) != 1 || out[0].Name != "Mouse" {
			t.Errorf("esperava apenas Mouse, obteve %v", nomes(out))
		}
	})

	t.Run("startswith com caseSensitive não casa caixa divergente", func(t *testing.T) {
		v := "mouse"
		out := buscar(t, db, dynamic.Query{Filter: &dynamic.Filter{Field: "name", Operator: "startswith", Value: &v, CaseSensitive: true}})
		if len(out) != 1 || out[0].Name != "mousepad" {
			t.Errorf("esperava apenas mousepad, obteve %v", nomes(out))
		}
	})
}

func TestApplyDynamicOrder(t *testing.T) {
	db := setupTestDB(t)

	t.Run("multi-chave: critérios anteriores têm precedência", func(t *testing.T) {
		promo := "promo"
		extra := produtoModel{Name: "Webcam", Price: 120.0, Stock: 1, Tag: &promo}
		if err := db.Create(&extra).Error; err != nil {
			t.Fatalf("falha ao popular: %v", err)
		}
		t.Cleanup(func() {
			db.Where("name = ?", "Webcam").Delete(&produtoModel{})
		})

		out := buscar(t, db, dynamic.Query{Sort: []dynamic.Sort{
			{Field: "price", Dir: dynamic.DirAsc},
			{Field: "name", Dir: dynamic.DirAsc},
		}})

		want := []string{"mousepad", "Mouse", "Teclado", "Webcam", "Monitor"}
		got := nomes(out)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("posição %d: esperava %s, obteve %s (completo: %v)", i, want[i], got[i], got)
			}
		}
	})

	t.Run("desc inverte a direção no banco", func(t *testing.T) {
		out := buscar(t, db, dynamic.Query{Sort: []dynamic.Sort{{Field: "price", Dir: dynamic.DirDesc}}})
		if out[0].Name != "Monitor" {
			t.Errorf("esperava Monitor primeiro, obteve %v", nomes(out))
		}
	})
}
