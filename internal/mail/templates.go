package mail

import "fmt"

func formatPaymentMethod(method string) string {
	switch method {
	case "pix", "bank_transfer":
		return "PIX"
	case "credit_card":
		return "Cartão de Crédito"
	case "boleto", "ticket", "bolbradesco":
		return "Boleto Bancário"
	default:
		return method
	}
}

func paymentInstructions(method string) string {
	switch method {
	case "pix", "bank_transfer":
		return "Abra o app do seu banco, escaneie o QR Code e confirme o pagamento. O PIX expira em 30 minutos."
	case "boleto", "ticket", "bolbradesco":
		return "O boleto pode ser pago em qualquer banco ou lotérica até a data de vencimento (7 dias)."
	default:
		return "Aguarde a confirmação do pagamento."
	}
}

func paymentConfirmationBody(data PaymentEmail) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #2e7d32;">Pagamento Aprovado! 🎉</h2>
			<p>Olá, <strong>%s</strong>!</p>
			<p>Seu pagamento foi aprovado e seu pedido já está em produção.</p>
			<table style="width: 100%%; border-collapse: collapse;">
				<tr><td style="padding: 8px; border-bottom: 1px solid #eee;">Produto</td><td style="padding: 8px; border-bottom: 1px solid #eee;"><strong>%s</strong></td></tr>
				<tr><td style="padding: 8px; border-bottom: 1px solid #eee;">Valor</td><td style="padding: 8px; border-bottom: 1px solid #eee;"><strong>R$ %s</strong></td></tr>
				<tr><td style="padding: 8px; border-bottom: 1px solid #eee;">Forma de pagamento</td><td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td></tr>
				<tr><td style="padding: 8px;">Código do pagamento</td><td style="padding: 8px;">%s</td></tr>
			</table>
			<p>Obrigado por comprar na <strong>3D Stuff</strong>!</p>
		</div>`,
		data.CustomerName, data.ProductName, data.Amount.StringFixed(2),
		formatPaymentMethod(data.PaymentMethod), data.PaymentID)
}

func paymentPendingBody(data PaymentEmail) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #f9a825;">Aguardando Pagamento ⏳</h2>
			<p>Olá, <strong>%s</strong>!</p>
			<p>Recebemos seu pedido de <strong>%s</strong> no valor de <strong>R$ %s</strong>.</p>
			<p>%s</p>
			<p>Código do pagamento: %s</p>
			<p>Equipe <strong>3D Stuff</strong></p>
		</div>`,
		data.CustomerName, data.ProductName, data.Amount.StringFixed(2),
		paymentInstructions(data.PaymentMethod), data.PaymentID)
}

func paymentCancelledBody(data PaymentEmail) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #c62828;">Pagamento Não Aprovado</h2>
			<p>Olá, <strong>%s</strong>.</p>
			<p>O pagamento do produto <strong>%s</strong> (R$ %s) não foi aprovado.</p>
			<p>Nenhum valor foi cobrado. Você pode tentar novamente com outra forma de pagamento.</p>
			<p>Código do pagamento: %s</p>
			<p>Equipe <strong>3D Stuff</strong></p>
		</div>`,
		data.CustomerName, data.ProductName, data.Amount.StringFixed(2), data.PaymentID)
}

func contactConfirmationBody(name string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #1565c0;">Recebemos sua mensagem!</h2>
			<p>Olá, <strong>%s</strong>!</p>
			<p>Obrigado por entrar em contato com a 3D Stuff. Nossa equipe responde em até 24 horas úteis.</p>
			<p>Equipe <strong>3D Stuff</strong></p>
		</div>`, name)
}
