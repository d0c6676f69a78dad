// Package export 生成无需浏览器参与的导出格式。
// PDF 走无头浏览器渲染；DOCX 在这里直接写 WordprocessingML，
// 牺牲模板视觉，换取可编辑的纯文本结构。
package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"resumecraft/internal/resume"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// BuildDOCX 将简历数据序列化为一个最小但合法的 .docx 包。
func BuildDOCX(data resume.Data) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", buildDocumentXML(data)},
	}

	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %q: %w", f.name, err)
		}
		if _, err := w.Write([]byte(f.content)); err != nil {
			return nil, fmt.Errorf("write zip entry %q: %w", f.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize docx: %w", err)
	}
	return buf.Bytes(), nil
}

type docWriter struct {
	sb strings.Builder
}

func (d *docWriter) paragraph(text string, opts ...paraOpt) {
	p := paraProps{}
	for _, opt := range opts {
		opt(&p)
	}

	d.sb.WriteString("<w:p>")
	if p.heading || p.bold || p.sizeHalfPts > 0 {
		d.sb.WriteString("<w:pPr>")
		if p.heading {
			d.sb.WriteString(`<w:spacing w:before="240" w:after="80"/>`)
		}
		d.sb.WriteString("</w:pPr>")
	}
	d.sb.WriteString("<w:r>")
	if p.bold || p.sizeHalfPts > 0 {
		d.sb.WriteString("<w:rPr>")
		if p.bold {
			d.sb.WriteString("<w:b/>")
		}
		if p.sizeHalfPts > 0 {
			fmt.Fprintf(&d.sb, `<w:sz w:val="%d"/>`, p.sizeHalfPts)
		}
		d.sb.WriteString("</w:rPr>")
	}
	fmt.Fprintf(&d.sb, `<w:t xml:space="preserve">%s</w:t>`, escapeXML(text))
	d.sb.WriteString("</w:r></w:p>")
}

type paraProps struct {
	bold        bool
	heading     bool
	sizeHalfPts int
}

type paraOpt func(*paraProps)

func bold() paraOpt    { return func(p *paraProps) { p.bold = true } }
func heading() paraOpt { return func(p *paraProps) { p.heading = true; p.bold = true } }

func sizeHalfPts(n int) paraOpt { return func(p *paraProps) { p.sizeHalfPts = n } }

func buildDocumentXML(data resume.Data) string {
	d := &docWriter{}

	name := strings.TrimSpace(data.PersonalInfo.Name)
	if name == "" {
		name = "Your Name"
	}
	d.paragraph(name, bold(), sizeHalfPts(48))
	if title := strings.TrimSpace(data.PersonalInfo.Title); title != "" {
		d.paragraph(title, sizeHalfPts(28))
	}

	contact := contactLine(data.PersonalInfo)
	if contact != "" {
		d.paragraph(contact)
	}

	if summary := strings.TrimSpace(data.Summary); summary != "" {
		d.paragraph("Summary", heading())
		d.paragraph(summary)
	}

	if len(data.Experience) > 0 {
		d.paragraph("Experience", heading())
		for _, exp := range data.Experience {
			d.paragraph(joinNonEmpty(" — ", exp.Position, exp.Company), bold())
			if dates := joinNonEmpty(" | ", dateRange(exp.StartDate, exp.EndDate, exp.Current), exp.Location); dates != "" {
				d.paragraph(dates)
			}
			for _, line := range exp.Description {
				if line = strings.TrimSpace(line); line != "" {
					d.paragraph("• " + line)
				}
			}
		}
	}

	if len(data.Education) > 0 {
		d.paragraph("Education", heading())
		for _, edu := range data.Education {
			d.paragraph(joinNonEmpty(", ", edu.Degree, edu.School), bold())
			if dates := joinNonEmpty(" | ", dateRange(edu.StartDate, edu.EndDate, false), edu.Location); dates != "" {
				d.paragraph(dates)
			}
			if gpa := strings.TrimSpace(edu.GPA); gpa != "" {
				d.paragraph("GPA: " + gpa)
			}
			if desc := strings.TrimSpace(edu.Description); desc != "" {
				d.paragraph(desc)
			}
		}
	}

	if len(data.Skills) > 0 {
		d.paragraph("Skills", heading())
		names := make([]string, 0, len(data.Skills))
		for _, s := range data.Skills {
			if n := strings.TrimSpace(s.Name); n != "" {
				names = append(names, n)
			}
		}
		d.paragraph(strings.Join(names, ", "))
	}

	if len(data.Certifications) > 0 {
		d.paragraph("Certifications", heading())
		for _, cert := range data.Certifications {
			d.paragraph(joinNonEmpty(" — ", cert.Name, joinNonEmpty(", ", cert.Issuer, cert.Date)))
		}
	}

	if len(data.Languages) > 0 {
		d.paragraph("Languages", heading())
		for _, lang := range data.Languages {
			d.paragraph(joinNonEmpty(" — ", lang.Name, lang.Level))
		}
	}

	for _, section := range data.CustomSections {
		if strings.TrimSpace(section.Title) == "" && strings.TrimSpace(section.Content) == "" {
			continue
		}
		d.paragraph(section.Title, heading())
		d.paragraph(section.Content)
	}

	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		"<w:body>" + d.sb.String() + "</w:body></w:document>"
}

func contactLine(p resume.PersonalInfo) string {
	return joinNonEmpty(" | ", p.Email, p.Phone, p.Location, p.LinkedIn, p.Website)
}

func dateRange(start, end string, current bool) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if current {
		end = "Present"
	}
	return joinNonEmpty(" – ", start, end)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return ""
	}
	return buf.String()
}
