package docx

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// trecho é um fragmento de texto com formatação dentro de um parágrafo.
type trecho struct {
	Texto   string
	Negrito bool
	Italico bool
	Quebra  bool // <br>
	Tab     bool // separador de célula de tabela
}

// paragrafo é a unidade de bloco do documento.
type paragrafo struct {
	Estilo  string // "", "h1", "h2" ou "h3"
	Trechos []trecho
}

// extrairParagrafos percorre a árvore HTML e achata os blocos que os
// modelos de contrato produzem: títulos, parágrafos, itens de lista e
// linhas de tabela (células separadas por tabulação).
func extrairParagrafos(raiz *html.Node) []paragrafo {
	c := &coletor{}
	c.visitar(raiz)
	c.fechar()
	return c.paragrafos
}

type coletor struct {
	paragrafos []paragrafo
	atual      *paragrafo
	negrito    int
	italico    int
}

func (c *coletor) abrir(estilo string) {
	c.fechar()
	c.atual = &paragrafo{Estilo: estilo}
}

func (c *coletor) fechar() {
	if c.atual != nil && len(c.atual.Trechos) > 0 {
		c.paragrafos = append(c.paragrafos, *c.atual)
	}
	c.atual = nil
}

func (c *coletor) adicionar(t trecho) {
	if c.atual == nil {
		c.abrir("")
	}
	c.atual.Trechos = append(c.atual.Trechos, t)
}

func (c *coletor) texto(s string) {
	s = colapsarEspacos(s)
	if s == "" {
		return
	}
	if strings.TrimSpace(s) == "" {
		// Espaço entre elementos inline: gruda no trecho anterior.
		if c.atual != nil && len(c.atual.Trechos) > 0 {
			ultimo := &c.atual.Trechos[len(c.atual.Trechos)-1]
			if !ultimo.Quebra && !ultimo.Tab && !strings.HasSuffix(ultimo.Texto, " ") {
				ultimo.Texto += " "
			}
		}
		return
	}
	c.adicionar(trecho{Texto: s, Negrito: c.negrito > 0, Italico: c.italico > 0})
}

func (c *coletor) visitar(n *html.Node) {
	if n.Type == html.TextNode {
		c.texto(n.Data)
		return
	}
	if n.Type != html.ElementNode && n.Type != html.DocumentNode {
		return
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		case "h1", "h2", "h3":
			c.abrir(n.Data)
			c.visitarFilhos(n)
			c.fechar()
			return
		case "p", "li", "tr":
			c.abrir("")
			c.visitarFilhos(n)
			c.fechar()
			return
		case "td", "th":
			if c.atual != nil && len(c.atual.Trechos) > 0 {
				c.adicionar(trecho{Tab: true})
			}
			if n.Data == "th" {
				c.negrito++
				c.visitarFilhos(n)
				c.negrito--
			} else {
				c.visitarFilhos(n)
			}
			return
		case "b", "strong":
			c.negrito++
			c.visitarFilhos(n)
			c.negrito--
			return
		case "i", "em":
			c.italico++
			c.visitarFilhos(n)
			c.italico--
			return
		case "br":
			c.adicionar(trecho{Quebra: true})
			return
		}
	}

	c.visitarFilhos(n)
}

func (c *coletor) visitarFilhos(n *html.Node) {
	for filho := n.FirstChild; filho != nil; filho = filho.NextSibling {
		c.visitar(filho)
	}
}

// colapsarEspacos reduz sequências de espaço a um único espaço, preservando
// um espaço de borda quando existia (significativo entre elementos inline).
func colapsarEspacos(s string) string {
	if s == "" {
		return ""
	}
	campos := strings.Fields(s)
	if len(campos) == 0 {
		return " "
	}
	out := strings.Join(campos, " ")
	if unicode.IsSpace(rune(s[0])) {
		out = " " + out
	}
	if unicode.IsSpace(rune(s[len(s)-1])) {
		out += " "
	}
	return out
}
