package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func lerParte(t *testing.T, pacote []byte, nome string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pacote), int64(len(pacote)))
	if err != nil {
		t.Fatalf("abrir pacote: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != nome {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("abrir parte %s: %v", nome, err)
		}
		defer rc.Close()
		conteudo, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("ler parte %s: %v", nome, err)
		}
		return string(conteudo)
	}
	t.Fatalf("parte %s não existe no pacote", nome)
	return ""
}

func TestConverterGeraPacoteCompleto(t *testing.T) {
	c := NovoConversor()

	pacote, err := c.Converter("<h1>Contrato</h1><p>Cláusula primeira.</p>")
	if err != nil {
		t.Fatalf("converter: %v", err)
	}

	for _, nome := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/document.xml",
		"word/footer1.xml",
	} {
		lerParte(t, pacote, nome)
	}

	doc := lerParte(t, pacote, "word/document.xml")
	if !strings.Contains(doc, ">Contrato<") {
		t.Errorf("título ausente do document.xml")
	}
	if !strings.Contains(doc, ">Cláusula primeira.<") {
		t.Errorf("parágrafo ausente do document.xml")
	}
	if !strings.Contains(doc, `<w:footerReference w:type="default" r:id="rId1"/>`) {
		t.Errorf("referência de rodapé ausente")
	}
}

func TestConverterNegritoEItalico(t *testing.T) {
	c := NovoConversor()

	pacote, err := c.Converter("<p><strong>Locadora</strong> e <em>Locatária</em></p>")
	if err != nil {
		t.Fatalf("converter: %v", err)
	}

	doc := lerParte(t, pacote, "word/document.xml")
	if !strings.Contains(doc, "<w:b/>") {
		t.Error("esperava run em negrito para <strong>")
	}
	if !strings.Contains(doc, "<w:i/>") {
		t.Error("esperava run em itálico para <em>")
	}
}

func TestConverterTituloSaiEmNegrito(t *testing.T) {
	c := NovoConversor()

	pacote, err := c.Converter("<h2>Condições</h2>")
	if err != nil {
		t.Fatalf("converter: %v", err)
	}

	doc := lerParte(t, pacote, "word/document.xml")
	if !strings.Contains(doc, "<w:b/>") {
		t.Error("título deveria sair em negrito")
	}
}

func TestConverterLinhaDeTabelaViraTabulacao(t *testing.T) {
	c := NovoConversor()

	pacote, err := c.Converter("<table><tr><td>Valor</td><td>R$ 160</td></tr></table>")
	if err != nil {
		t.Fatalf("converter: %v", err)
	}

	doc := lerParte(t, pacote, "word/document.xml")
	if !strings.Contains(doc, "<w:tab/>") {
		t.Error("células deveriam ser separadas por tabulação")
	}
	if !strings.Contains(doc, ">Valor<") || !strings.Contains(doc, ">R$ 160<") {
		t.Error("conteúdo das células ausente")
	}
}

func TestConverterEscapaXML(t *testing.T) {
	c := NovoConversor()

	pacote, err := c.Converter("<p>Silva &amp; Filhos &lt;matriz&gt;</p>")
	if err != nil {
		t.Fatalf("converter: %v", err)
	}

	doc := lerParte(t, pacote, "word/document.xml")
	if !strings.Contains(doc, "Silva &amp; Filhos &lt;matriz&gt;") {
		t.Errorf("texto não escapado corretamente: %s", doc)
	}
}

func TestConverterIgnoraScriptEStyle(t *testing.T) {
	c := NovoConversor()

	pacote, err := c.Converter("<style>p{color:red}</style><p>Texto</p><script>alert(1)</script>")
	if err != nil {
		t.Fatalf("converter: %v", err)
	}

	doc := lerParte(t, pacote, "word/document.xml")
	if strings.Contains(doc, "color:red") || strings.Contains(doc, "alert(1)") {
		t.Error("script/style não deveriam entrar no documento")
	}
	if !strings.Contains(doc, ">Texto<") {
		t.Error("texto do parágrafo ausente")
	}
}

func TestColapsarEspacos(t *testing.T) {
	casos := []struct{ entrada, saida string }{
		{"a  b", "a b"},
		{"  a b  ", " a b "},
		{"\n\t", " "},
		{"", ""},
	}
	for _, c := range casos {
		if got := colapsarEspacos(c.entrada); got != c.saida {
			t.Errorf("colapsarEspacos(%q) = %q, esperava %q", c.entrada, got, c.saida)
		}
	}
}
