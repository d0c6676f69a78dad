package render

// documentTemplate 是整页文档的 Go HTML 模板。
// 所有布局分支只消费 Layout Resolver 的产物，模板里不做业务判断。
// 根节点携带稳定 id（resume-root），供导出侧按标识定位渲染结果。
const documentTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: {{.Styles.FontFamily}};
            font-size: {{.Styles.FontSize "base"}};
            line-height: {{.Styles.LineHeight "normal"}};
            color: {{.Styles.Color "text"}};
            background: {{.Styles.Color "background"}};
        }
        .resume-page {
            width: 794px; /* A4 @ 96 DPI */
            min-height: 1122px;
            margin: 0 auto;
            background: {{.Styles.Color "background"}};
            box-sizing: border-box;
            overflow: hidden;
        }
        .layout-two-column {
            display: grid;
            grid-template-columns: 2fr 1fr;
            gap: 32px;
            padding: {{.Styles.Spacing "contentPadding"}};
        }
        .layout-three-column {
            display: grid;
            grid-template-columns: 1fr 1fr 1fr;
            gap: 24px;
            padding: {{.Styles.Spacing "contentPadding"}};
        }
        .layout-sidebar {
            display: flex;
            min-height: 1122px;
        }
        .layout-sidebar .column-main {
            flex: 1;
            padding: {{.Styles.Spacing "mainColumnPadding"}};
        }
        .layout-sidebar .column-sidebar {
            width: 33%;
            padding: {{.Styles.Spacing "sidebarColumnPadding"}};
            background: {{.Styles.Color "muted"}};
        }
        .layout-single .column-main {
            padding: {{.Styles.Spacing "contentPadding"}};
        }
        .band-header {
            padding: {{.Styles.Spacing "contentPadding"}};
            background: {{.Styles.Color "primary"}};
            color: {{.Styles.Color "background"}};
        }
        .band-footer {
            padding: {{.Styles.Spacing "contentPadding"}};
            border-top: 1px solid {{.Styles.Color "border"}};
        }
        .section-title {
            font-size: {{.Styles.FontSize "heading3"}};
            font-weight: 700;
            text-transform: uppercase;
            letter-spacing: 0.05em;
            color: {{.Styles.Color "primary"}};
            margin: 0 0 8px 0;
        }
        .section-title.header-underline {
            border-bottom: 2px solid {{.Styles.Color "primary"}};
            padding-bottom: 4px;
        }
        .section-divider {
            border-bottom: 1px solid {{.Styles.Color "border"}};
            margin-top: {{.Styles.Spacing "item"}};
        }
        .editable {
            cursor: pointer;
        }
    </style>
</head>
<body>
    <div id="resume-root" class="resume-page">
        {{if eq .Layout "sidebar"}}
            {{range .Header}}{{template "sectionBlock" .}}{{end}}
            <div class="layout-sidebar">
                <div class="column-main">
                    {{range .Main}}{{template "sectionBlock" .}}{{end}}
                </div>
                <div class="column-sidebar">
                    {{range .Sidebar}}{{template "sectionBlock" .}}{{end}}
                </div>
            </div>
        {{else if eq .Layout "two-column"}}
            {{range .Header}}{{template "sectionBlock" .}}{{end}}
            <div class="layout-two-column">
                <div class="column-main">
                    {{range .Main}}{{template "sectionBlock" .}}{{end}}
                </div>
                <div class="column-secondary">
                    {{range .Sidebar}}{{template "sectionBlock" .}}{{end}}
                </div>
            </div>
        {{else if eq .Layout "three-column"}}
            {{range .Header}}{{template "sectionBlock" .}}{{end}}
            <div class="layout-three-column">
                <div>{{range .Main}}{{template "sectionBlock" .}}{{end}}</div>
                <div>{{range .Sidebar}}{{template "sectionBlock" .}}{{end}}</div>
                <div>{{range .Footer}}{{template "sectionBlock" .}}{{end}}</div>
            </div>
        {{else if eq .Layout "header-footer"}}
            {{if .Header}}
            <div class="band-header">
                {{range .Header}}{{template "sectionBlock" .}}{{end}}
            </div>
            {{end}}
            <div class="layout-single">
                <div class="column-main">
                    {{range .Main}}{{template "sectionBlock" .}}{{end}}
                </div>
            </div>
            {{if .Footer}}
            <div class="band-footer">
                {{range .Footer}}{{template "sectionBlock" .}}{{end}}
            </div>
            {{end}}
        {{else}}
            <div class="layout-single">
                <div class="column-main">
                    {{range .All}}{{template "sectionBlock" .}}{{end}}
                </div>
            </div>
        {{end}}
    </div>
</body>
</html>

{{define "sectionBlock"}}
<div class="template-section template-section-{{.ID}}" style="margin-bottom: {{.MarginBottom}}; text-align: {{.Alignment}};">
    {{if .ShowTitle}}
    <h3 class="section-title{{if eq .HeaderStyle "underline"}} header-underline{{end}}">{{.Title}}</h3>
    {{end}}
    {{.Body}}
    {{if .Divider}}<div class="section-divider"></div>{{end}}
</div>
{{end}}

{{define "contactList"}}
<div class="contact-info" style="display: {{if eq .ContactLayout "row"}}flex{{else if eq .ContactLayout "grid"}}grid{{else}}block{{end}};{{if eq .ContactLayout "row"}} flex-wrap: wrap; gap: 16px;{{end}}{{if eq .ContactLayout "grid"}} grid-template-columns: 1fr 1fr; gap: 4px;{{end}} font-size: {{.Styles.FontSize "contactInfo"}};">
    {{$edit := .EditMode}}
    {{range .Contacts}}
    <div class="contact-item" style="margin-bottom: 2px;">
        <span class="contact-label">{{.Label}}:</span>
        {{editText $edit false .Field .Value ""}}
    </div>
    {{end}}
</div>
{{end}}

{{/* 页眉变体：姓名/头衔在左，完整联系方式横排，照片靠右。 */}}
{{define "personal_header"}}
<div class="personal-info personal-info-header" style="display: flex; align-items: center; justify-content: space-between;">
    <div>
        {{if .ShowName}}
        <h1 style="font-size: {{.Styles.FontSize "heading1"}}; line-height: {{.Styles.LineHeight "tight"}}; margin: 0 0 4px 0;">{{editText .EditMode false "personalInfo.name" .Name "Your Name"}}</h1>
        {{end}}
        {{if .ShowTitle}}
        <h2 style="font-size: {{.Styles.FontSize "heading2"}}; font-weight: 400; color: {{.Styles.Color "accent"}}; margin: 0 0 8px 0;">{{editText .EditMode false "personalInfo.title" .Title "Your Title"}}</h2>
        {{end}}
        {{if .ShowContact}}{{template "contactList" .}}{{end}}
    </div>
    {{if and .ShowPhoto .Photo}}
    <img class="profile-photo" src="{{.Photo | safeURL}}" alt="Profile" style="width: {{.PhotoSize}}px; height: {{.PhotoSize}}px; border-radius: 50%; object-fit: cover;"/>
    {{end}}
</div>
{{end}}

{{/* 侧栏变体：照片、姓名、头衔纵向堆叠，联系方式成块。 */}}
{{define "personal_sidebar"}}
<div class="personal-info personal-info-sidebar">
    {{if and .ShowPhoto .Photo}}
    <div style="text-align: center; margin-bottom: 12px;">
        <img class="profile-photo" src="{{.Photo | safeURL}}" alt="Profile" style="width: {{.PhotoSize}}px; height: {{.PhotoSize}}px; border-radius: 50%; object-fit: cover; border: 2px solid {{.Styles.Color "primary"}};"/>
    </div>
    {{end}}
    {{if .ShowName}}
    <h1 style="font-size: {{.Styles.FontSize "heading1"}}; line-height: {{.Styles.LineHeight "tight"}}; color: {{.Styles.Color "primary"}}; margin: 0 0 4px 0;">{{editText .EditMode false "personalInfo.name" .Name "Your Name"}}</h1>
    {{end}}
    {{if .ShowTitle}}
    <h2 style="font-size: {{.Styles.FontSize "heading2"}}; font-weight: 400; color: {{.Styles.Color "secondary"}}; margin: 0 0 12px 0;">{{editText .EditMode false "personalInfo.title" .Title "Your Title"}}</h2>
    {{end}}
    {{if .ShowContact}}{{template "contactList" .}}{{end}}
</div>
{{end}}

{{/* 主栏变体：照片在左，姓名/头衔/联系方式栅格在右。 */}}
{{define "personal_main"}}
<div class="personal-info personal-info-main" style="display: flex; align-items: flex-start;">
    {{if .ShowPhoto}}
    <div style="margin-right: 24px; flex-shrink: 0;">
        {{if .Photo}}
        <img class="profile-photo" src="{{.Photo | safeURL}}" alt="Profile" style="width: {{.PhotoSize}}px; height: {{.PhotoSize}}px; border-radius: 50%; object-fit: cover; border: 2px solid {{.Styles.Color "primary"}};"/>
        {{else}}
        <div class="photo-placeholder" style="width: {{.PhotoSize}}px; height: {{.PhotoSize}}px; border-radius: 50%; background: {{.Styles.Color "muted"}}; border: 2px solid {{.Styles.Color "primary"}};"></div>
        {{end}}
    </div>
    {{end}}
    <div style="flex: 1;">
        {{if .ShowName}}
        <h1 style="font-size: {{.Styles.FontSize "heading1"}}; line-height: {{.Styles.LineHeight "tight"}}; color: {{.Styles.Color "primary"}}; margin: 0 0 4px 0;">{{editText .EditMode false "personalInfo.name" .Name "Your Name"}}</h1>
        {{end}}
        {{if .ShowTitle}}
        <h2 style="font-size: {{.Styles.FontSize "heading2"}}; font-weight: 400; color: {{.Styles.Color "secondary"}}; margin: 0 0 8px 0;">{{editText .EditMode false "personalInfo.title" .Title "Your Title"}}</h2>
        {{end}}
        {{if .ShowContact}}{{template "contactList" .}}{{end}}
    </div>
</div>
{{end}}

{{define "summary"}}
{{if .Text}}
<p class="summary-text" style="margin: 0; line-height: {{.Styles.LineHeight "relaxed"}};">{{editText .EditMode true "summary" .Text ""}}</p>
{{end}}
{{end}}

{{define "experience"}}
{{$v := .}}
<div class="experience-list{{if eq .Display "timeline"}} experience-timeline{{end}}{{if eq .Display "cards"}} experience-cards{{end}}">
    {{range .Entries}}
    <div class="experience-item" style="margin-bottom: 16px;{{if eq $v.Display "timeline"}} border-left: 2px solid {{$v.Styles.Color "accent"}}; padding-left: 12px;{{end}}{{if eq $v.Display "cards"}} background: {{$v.Styles.Color "surface"}}; padding: 12px; border-radius: 4px;{{end}}">
        <h4 style="font-size: {{$v.Styles.FontSize "heading3"}}; margin: 0;">{{editText $v.EditMode false (printf "experience.%s.position" .ID) .Position ""}}</h4>
        <div style="color: {{$v.Styles.Color "accent"}}; font-weight: 500;">{{editText $v.EditMode false (printf "experience.%s.company" .ID) .Company ""}}</div>
        <div style="font-size: {{$v.Styles.FontSize "small"}}; color: {{$v.Styles.Color "secondary"}};">
            <span>{{.DateLabel}}</span>
            {{if .Location}}<span> · {{.Location}}</span>{{end}}
        </div>
        {{if .Description}}
        <ul style="margin: 4px 0 0 0; padding-left: 18px;">
            {{$id := .ID}}
            {{range $i, $line := .Description}}
            <li>{{editText $v.EditMode true (printf "experience.%s.description.%d" $id $i) $line ""}}</li>
            {{end}}
        </ul>
        {{end}}
    </div>
    {{end}}
</div>
{{end}}

{{define "education"}}
{{$v := .}}
<div class="education-list">
    {{range .Entries}}
    <div class="education-item" style="margin-bottom: 12px;">
        <h4 style="font-size: {{$v.Styles.FontSize "heading3"}}; margin: 0;">{{editText $v.EditMode false (printf "education.%s.degree" .ID) .Degree ""}}</h4>
        <div style="font-weight: 500;">{{editText $v.EditMode false (printf "education.%s.school" .ID) .School ""}}</div>
        <div style="font-size: {{$v.Styles.FontSize "small"}}; color: {{$v.Styles.Color "secondary"}};">
            <span>{{.DateLabel}}</span>
            {{if .Location}}<span> · {{.Location}}</span>{{end}}
            {{if .GPA}}<span> · GPA {{.GPA}}</span>{{end}}
        </div>
        {{if .Description}}<p style="margin: 4px 0 0 0;">{{.Description}}</p>{{end}}
    </div>
    {{end}}
</div>
{{end}}

{{define "skills"}}
{{$v := .}}
{{if eq .Display "tags"}}
<div class="skills-tags" style="display: flex; flex-wrap: wrap; gap: 6px;">
    {{range .Entries}}
    <span class="skill-tag" style="padding: 2px 10px; border-radius: 999px; background: {{$v.Styles.Color "muted"}}; color: {{$v.Styles.Color "accent"}}; border: 1px solid {{$v.Styles.Color "border"}};">{{.Name}}</span>
    {{end}}
</div>
{{else if eq .Display "grid"}}
<div class="skills-grid" style="display: grid; grid-template-columns: repeat({{.GridColumns}}, 1fr); gap: 4px;">
    {{range .Entries}}
    <div class="skill-item">{{.Name}}</div>
    {{end}}
</div>
{{else}}
<div class="skills-list">
    {{range .Entries}}
    <div class="skill-item" style="margin-bottom: 4px;">
        {{.Name}}{{if .Level}} <span style="font-size: {{$v.Styles.FontSize "small"}}; color: {{$v.Styles.Color "secondary"}};">({{.Level}})</span>{{end}}
    </div>
    {{end}}
</div>
{{end}}
{{end}}

{{define "languages"}}
{{$v := .}}
<div class="languages-list">
    {{range .Entries}}
    <div class="language-item" style="margin-bottom: 4px;">
        {{.Name}}{{if .Level}} <span style="font-size: {{$v.Styles.FontSize "small"}}; color: {{$v.Styles.Color "secondary"}};">({{.Level}})</span>{{end}}
    </div>
    {{end}}
</div>
{{end}}

{{define "certifications"}}
{{$v := .}}
<div class="certifications-list">
    {{range .Entries}}
    <div class="certification-item" style="margin-bottom: 8px;">
        <div style="font-weight: 500;">{{.Name}}</div>
        <div style="font-size: {{$v.Styles.FontSize "small"}}; color: {{$v.Styles.Color "secondary"}};">
            {{.Issuer}}{{if .Date}} · {{.Date}}{{end}}
        </div>
    </div>
    {{end}}
</div>
{{end}}

{{define "custom"}}
<div class="custom-section">
    {{if .Content}}
    <p style="margin: 0; line-height: {{.Styles.LineHeight "relaxed"}};">{{editText .EditMode true (printf "customSections.%s.content" .FieldKey) .Content ""}}</p>
    {{end}}
</div>
{{end}}
`
