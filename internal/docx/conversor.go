// Package docx converte o HTML final de um contrato em um documento
// WordprocessingML (.docx). A conversão cobre o subconjunto de HTML que os
// modelos de contrato produzem; não é um conversor genérico.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ContentType do pacote gerado.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Opcoes de composição do documento. Fixas para contratos; não há
// configuração por usuário.
type Opcoes struct {
	RodapePaginacao bool
	TamanhoFonte    int // half-points: 22 = 11pt
	TamanhoTitulo   int
}

// Conversor monta o pacote OPC com archive/zip a partir dos parágrafos
// extraídos do HTML.
type Conversor struct {
	opcoes Opcoes
}

// NovoConversor devolve o conversor com as opções padrão dos contratos:
// rodapé com numeração de página, corpo em 11pt.
func NovoConversor() *Conversor {
	return &Conversor{opcoes: Opcoes{
		RodapePaginacao: true,
		TamanhoFonte:    22,
		TamanhoTitulo:   32,
	}}
}

// ContentType implementa o colaborador de conversão do contrato.
func (c *Conversor) ContentType() string {
	return ContentType
}

// Converter transforma o HTML em bytes .docx.
func (c *Conversor) Converter(conteudo string) ([]byte, error) {
	raiz, err := html.Parse(strings.NewReader(conteudo))
	if err != nil {
		return nil, fmt.Errorf("interpretar html do contrato: %w", err)
	}
	return c.montarPacote(extrairParagrafos(raiz))
}

func (c *Conversor) montarPacote(paragrafos []paragrafo) ([]byte, error) {
	partes := []struct {
		nome     string
		conteudo string
	}{
		{"[Content_Types].xml", c.contentTypesXML()},
		{"_rels/.rels", relsRaizXML},
		{"word/_rels/document.xml.rels", c.documentoRelsXML()},
		{"word/document.xml", c.documentoXML(paragrafos)},
	}
	if c.opcoes.RodapePaginacao {
		partes = append(partes, struct{ nome, conteudo string }{"word/footer1.xml", rodapeXML})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range partes {
		f, err := zw.Create(p.nome)
		if err != nil {
			return nil, fmt.Errorf("criar parte %s: %w", p.nome, err)
		}
		if _, err := f.Write([]byte(p.conteudo)); err != nil {
			return nil, fmt.Errorf("escrever parte %s: %w", p.nome, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("fechar pacote: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Conversor) documentoXML(paragrafos []paragrafo) string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`)
	for _, p := range paragrafos {
		c.escreverParagrafo(&b, p)
	}
	b.WriteString(`<w:sectPr>`)
	if c.opcoes.RodapePaginacao {
		b.WriteString(`<w:footerReference w:type="default" r:id="rId1"/>`)
	}
	// A4 em twentieths of a point.
	b.WriteString(`<w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1417" w:right="1417" w:bottom="1417" w:left="1417"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func (c *Conversor) escreverParagrafo(b *strings.Builder, p paragrafo) {
	tamanho := c.opcoes.TamanhoFonte
	negritoBase := false
	switch p.Estilo {
	case "h1":
		tamanho = c.opcoes.TamanhoTitulo
		negritoBase = true
	case "h2":
		tamanho = c.opcoes.TamanhoTitulo - 4
		negritoBase = true
	case "h3":
		tamanho = c.opcoes.TamanhoTitulo - 8
		negritoBase = true
	}

	b.WriteString(`<w:p>`)
	if p.Estilo != "" {
		b.WriteString(`<w:pPr><w:spacing w:before="240" w:after="120"/></w:pPr>`)
	}
	for _, t := range p.Trechos {
		switch {
		case t.Quebra:
			b.WriteString(`<w:r><w:br/></w:r>`)
		case t.Tab:
			b.WriteString(`<w:r><w:tab/></w:r>`)
		default:
			b.WriteString(`<w:r><w:rPr>`)
			if t.Negrito || negritoBase {
				b.WriteString(`<w:b/>`)
			}
			if t.Italico {
				b.WriteString(`<w:i/>`)
			}
			fmt.Fprintf(b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, tamanho, tamanho)
			b.WriteString(`</w:rPr>`)
			fmt.Fprintf(b, `<w:t xml:space="preserve">%s</w:t>`, escaparXML(t.Texto))
			b.WriteString(`</w:r>`)
		}
	}
	b.WriteString(`</w:p>`)
}

func (c *Conversor) contentTypesXML() string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	if c.opcoes.RodapePaginacao {
		b.WriteString(`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func (c *Conversor) documentoRelsXML() string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	if c.opcoes.RodapePaginacao {
		b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>`)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const relsRaizXML = xmlDecl +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// Rodapé com o número da página centralizado (campo PAGE).
const rodapeXML = xmlDecl +
	`<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>` +
	`<w:r><w:fldChar w:fldCharType="begin"/></w:r>` +
	`<w:r><w:instrText xml:space="preserve"> PAGE </w:instrText></w:r>` +
	`<w:r><w:fldChar w:fldCharType="end"/></w:r>` +
	`</w:p></w:ftr>`

var escapadorXML = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escaparXML(s string) string {
	return escapadorXML.Replace(s)
}
