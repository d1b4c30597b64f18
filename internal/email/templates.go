package email

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"time"
)

// SafeFixed formats a numeric value with the given number of decimals.
// Nil pointers, NaN, infinities and non-numeric values all render as
// "0.00" so a partially-assembled payload can never leak "NaN" into an
// email.
func SafeFixed(value interface{}, decimals int) string {
	var f float64

	switch v := value.(type) {
	case nil:
		return "0.00"
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case *float64:
		if v == nil {
			return "0.00"
		}
		f = *v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "0.00"
		}
		f = parsed
	default:
		return "0.00"
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0.00"
	}

	return strconv.FormatFloat(f, 'f', decimals, 64)
}

// formatLevel prints a water level the way the dashboard does: no
// trailing zeros, "2.8" not "2.80".
func formatLevel(level float64) string {
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return "0"
	}
	return strconv.FormatFloat(level, 'f', -1, 64)
}

func statusLabel(status string) string {
	switch status {
	case "active":
		return "Ativo"
	case "maintenance":
		return "Manutenção"
	default:
		return "Inativo"
	}
}

func statusClass(status string) string {
	switch status {
	case "active":
		return "status-active"
	case "maintenance":
		return "status-maintenance"
	default:
		return "status-inactive"
	}
}

var templateFuncs = template.FuncMap{
	"safeFixed":   SafeFixed,
	"formatLevel": formatLevel,
	"statusLabel": statusLabel,
	"statusClass": statusClass,
}

// Renderer turns report payloads into self-contained HTML documents.
// Pure: no network or file I/O.
type Renderer struct {
	dashboardURL string
	now          func() time.Time
}

type RendererOption func(*Renderer)

// WithNow injects the renderer's time source (tests).
func WithNow(now func() time.Time) RendererOption {
	return func(r *Renderer) { r.now = now }
}

func NewRenderer(dashboardURL string, opts ...RendererOption) *Renderer {
	r := &Renderer{
		dashboardURL: dashboardURL,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WeeklyReport renders the full weekly summary email.
func (r *Renderer) WeeklyReport(data *WeeklyReportData) (string, error) {
	ctx := struct {
		*WeeklyReportData
		DashboardURL string
		GeneratedAt  string
	}{
		WeeklyReportData: data,
		DashboardURL:     r.dashboardURL,
		GeneratedAt:      r.now().Format("02/01/2006 15:04:05"),
	}

	var buf bytes.Buffer
	if err := weeklyReportTmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("render weekly report: %w", err)
	}
	return buf.String(), nil
}

// WeeklyReportSubject builds the subject line for a weekly report.
func (r *Renderer) WeeklyReportSubject(period ReportPeriod) string {
	return fmt.Sprintf("FloodGuard - Relatório Semanal (%s - %s)", period.Start, period.End)
}

// CriticalAlert renders the single-panel critical water level email.
func (r *Renderer) CriticalAlert(sensorName string, level float64) (string, error) {
	ctx := struct {
		SensorName   string
		Level        string
		Timestamp    string
		DashboardURL string
	}{
		SensorName:   sensorName,
		Level:        formatLevel(level),
		Timestamp:    r.now().Format("02/01/2006 15:04:05"),
		DashboardURL: r.dashboardURL,
	}

	var buf bytes.Buffer
	if err := criticalAlertTmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("render critical alert: %w", err)
	}
	return buf.String(), nil
}

// CriticalAlertSubject builds the subject line for a critical alert.
func (r *Renderer) CriticalAlertSubject(sensorName string) string {
	return fmt.Sprintf("🚨 FloodGuard - Alerta Crítico: %s", sensorName)
}

// MaintenanceAlert renders the single-panel maintenance email.
func (r *Renderer) MaintenanceAlert(sensorName, reason string) (string, error) {
	ctx := struct {
		SensorName   string
		Reason       string
		Date         string
		DashboardURL string
	}{
		SensorName:   sensorName,
		Reason:       reason,
		Date:         r.now().Format("02/01/2006"),
		DashboardURL: r.dashboardURL,
	}

	var buf bytes.Buffer
	if err := maintenanceAlertTmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("render maintenance alert: %w", err)
	}
	return buf.String(), nil
}

// MaintenanceAlertSubject builds the subject line for a maintenance alert.
func (r *Renderer) MaintenanceAlertSubject(sensorName string) string {
	return fmt.Sprintf("🔧 FloodGuard - Manutenção Necessária: %s", sensorName)
}

var weeklyReportTmpl = template.Must(template.New("weekly_report").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Relatório Semanal - FloodGuard</title>
    <style>
      body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f8fafc; }
      .container { background-color: white; border-radius: 8px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); overflow: hidden; }
      .header { background: linear-gradient(135deg, #0ea5e9 0%, #0284c7 100%); color: white; padding: 30px 20px; text-align: center; }
      .logo { width: 60px; height: 60px; margin: 0 auto 15px; background-color: rgba(255, 255, 255, 0.2); border-radius: 50%; font-size: 24px; line-height: 60px; }
      .content { padding: 30px 20px; }
      .section { margin-bottom: 30px; }
      .section-title { font-size: 18px; font-weight: 600; color: #1e293b; margin-bottom: 15px; border-bottom: 2px solid #e2e8f0; padding-bottom: 8px; }
      .stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(120px, 1fr)); gap: 15px; margin-bottom: 20px; }
      .stat-card { background-color: #f8fafc; padding: 15px; border-radius: 6px; text-align: center; border: 1px solid #e2e8f0; }
      .stat-value { font-size: 24px; font-weight: 700; color: #0ea5e9; display: block; }
      .stat-label { font-size: 12px; color: #64748b; text-transform: uppercase; letter-spacing: 0.5px; }
      .table { width: 100%; border-collapse: collapse; margin-top: 15px; }
      .table th, .table td { padding: 12px 8px; text-align: left; border-bottom: 1px solid #e2e8f0; }
      .table th { background-color: #f1f5f9; font-weight: 600; color: #475569; font-size: 14px; }
      .table td { font-size: 14px; }
      .status-active { color: #059669; font-weight: 500; }
      .status-inactive { color: #dc2626; font-weight: 500; }
      .status-maintenance { color: #d97706; font-weight: 500; }
      .alert-item { background-color: #fef3c7; border: 1px solid #f59e0b; border-radius: 6px; padding: 12px; margin-bottom: 8px; }
      .alert-sensor { font-weight: 600; color: #92400e; }
      .alert-details { font-size: 14px; color: #78350f; margin-top: 4px; }
      .footer { background-color: #f8fafc; padding: 20px; text-align: center; border-top: 1px solid #e2e8f0; }
      .footer-text { font-size: 12px; color: #64748b; margin: 5px 0; }
      .button { display: inline-block; background-color: #0ea5e9; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: 500; margin: 15px 0; }
      .download-section { background-color: #f0f9ff; border: 1px solid #0ea5e9; border-radius: 6px; padding: 15px; margin: 20px 0; text-align: center; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <div class="logo">🌊</div>
        <h1 style="margin: 0; font-size: 24px;">Relatório Semanal FloodGuard</h1>
        <p style="margin: 10px 0 0; opacity: 0.9;">{{.Period.Start}} - {{.Period.End}}</p>
      </div>

      <div class="content">
        <div class="section">
          <p>Olá <strong>{{.User.Name}}</strong>,</p>
          <p>Aqui está o seu relatório semanal do FloodGuard com um resumo das atividades dos seus sensores de monitoramento de água.</p>
        </div>

        <div class="section">
          <h2 class="section-title">📊 Resumo da Semana</h2>
          <div class="stats-grid">
            <div class="stat-card">
              <span class="stat-value">{{.Summary.TotalSensors}}</span>
              <span class="stat-label">Sensores</span>
            </div>
            <div class="stat-card">
              <span class="stat-value">{{.Summary.ActiveSensors}}</span>
              <span class="stat-label">Ativos</span>
            </div>
            <div class="stat-card">
              <span class="stat-value">{{.Summary.TotalReadings}}</span>
              <span class="stat-label">Leituras</span>
            </div>
            <div class="stat-card">
              <span class="stat-value">{{safeFixed .Summary.AvgTemperature 1}}°C</span>
              <span class="stat-label">Temp. Média</span>
            </div>
          </div>
        </div>

        <div class="section">
          <h2 class="section-title">🔧 Status dos Sensores</h2>
          <table class="table">
            <thead>
              <tr>
                <th>Sensor</th>
                <th>Status</th>
                <th>Leituras</th>
                <th>Nível Médio</th>
              </tr>
            </thead>
            <tbody>
              {{range .Sensors}}
              <tr>
                <td>
                  <strong>{{if .Name}}{{.Name}}{{else}}Sensor sem nome{{end}}</strong>
                  <br>
                  <small style="color: #64748b;">{{if .Location}}{{.Location}}{{else}}Localização não informada{{end}}</small>
                </td>
                <td class="{{statusClass .Status}}">{{statusLabel .Status}}</td>
                <td>{{.ReadingsCount}}</td>
                <td>{{safeFixed .AvgLevel 2}}m</td>
              </tr>
              {{end}}
            </tbody>
          </table>
        </div>

        <div class="section">
          <h2 class="section-title">🧪 Indicadores de Qualidade</h2>
          <div class="stats-grid">
            <div class="stat-card">
              <span class="stat-value">{{safeFixed .Summary.AvgTemperature 1}}°C</span>
              <span class="stat-label">Temperatura</span>
            </div>
            <div class="stat-card">
              <span class="stat-value">{{safeFixed .Summary.AvgTurbidity 1}} NTU</span>
              <span class="stat-label">Turbidez</span>
            </div>
            <div class="stat-card">
              <span class="stat-value">{{safeFixed .Summary.AvgConductivity 0}} µS/cm</span>
              <span class="stat-label">Condutividade</span>
            </div>
          </div>
        </div>

        {{if .Alerts}}
        <div class="section">
          <h2 class="section-title">⚠️ Alertas da Semana</h2>
          {{range .Alerts}}
          <div class="alert-item">
            <div class="alert-sensor">{{.SensorName}}</div>
            <div class="alert-details">Nível crítico detectado: {{safeFixed .Level 2}}m em {{.Timestamp}}</div>
          </div>
          {{end}}
        </div>
        {{end}}

        <div class="download-section">
          <h3 style="margin: 0 0 10px 0; color: #0ea5e9;">📄 Download do Relatório</h3>
          <p style="margin: 0 0 15px 0; font-size: 14px;">Baixe uma versão em PDF deste relatório para seus arquivos.</p>
          <a href="{{.DashboardURL}}/dashboard/reports/download" class="button">📥 Baixar PDF</a>
        </div>

        <div class="section" style="text-align: center;">
          <a href="{{.DashboardURL}}/dashboard" class="button">Ver Dashboard Completo</a>
        </div>
      </div>

      <div class="footer">
        <p class="footer-text"><strong>FloodGuard</strong> - Sistema de Monitoramento de Níveis de Água</p>
        <p class="footer-text">Relatório gerado em {{.GeneratedAt}}</p>
        <p class="footer-text">Para alterar suas preferências de email, acesse as <a href="{{.DashboardURL}}/dashboard/settings" style="color: #0ea5e9;">configurações</a></p>
      </div>
    </div>
  </body>
</html>
`))

var criticalAlertTmpl = template.Must(template.New("critical_alert").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Alerta Crítico - FloodGuard</title>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
      .alert-container { background-color: #fef2f2; border: 2px solid #fca5a5; border-radius: 8px; padding: 20px; margin: 20px 0; }
      .alert-title { color: #dc2626; font-size: 20px; font-weight: bold; margin-bottom: 10px; }
      .alert-message { color: #7f1d1d; margin-bottom: 15px; }
      .button { display: inline-block; background-color: #dc2626; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: 500; }
    </style>
  </head>
  <body>
    <div class="alert-container">
      <div class="alert-title">⚠️ Alerta Crítico de Nível de Água</div>
      <div class="alert-message">
        <p><strong>Sensor:</strong> {{.SensorName}}</p>
        <p><strong>Nível detectado:</strong> {{.Level}}m</p>
        <p><strong>Horário:</strong> {{.Timestamp}}</p>
        <p>O nível de água atingiu um valor crítico. Verifique imediatamente a situação.</p>
      </div>
      <a href="{{.DashboardURL}}/dashboard" class="button">Ver Dashboard</a>
    </div>
  </body>
</html>
`))

var maintenanceAlertTmpl = template.Must(template.New("maintenance_alert").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Alerta de Manutenção - FloodGuard</title>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
      .maintenance-container { background-color: #fffbeb; border: 2px solid #fbbf24; border-radius: 8px; padding: 20px; margin: 20px 0; }
      .maintenance-title { color: #d97706; font-size: 18px; font-weight: bold; margin-bottom: 10px; }
      .maintenance-message { color: #92400e; margin-bottom: 15px; }
      .button { display: inline-block; background-color: #d97706; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: 500; }
    </style>
  </head>
  <body>
    <div class="maintenance-container">
      <div class="maintenance-title">🔧 Alerta de Manutenção</div>
      <div class="maintenance-message">
        <p><strong>Sensor:</strong> {{.SensorName}}</p>
        <p><strong>Motivo:</strong> {{.Reason}}</p>
        <p><strong>Data:</strong> {{.Date}}</p>
        <p>Este sensor precisa de atenção para manter o funcionamento adequado.</p>
      </div>
      <a href="{{.DashboardURL}}/dashboard/sensors" class="button">Gerenciar Sensores</a>
    </div>
  </body>
</html>
`))
