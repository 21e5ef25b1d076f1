package render

// The chart is wrapped in a two column page: chart on the left, the log of the
// run that produced it on the right.

const pageHeader = `
<!DOCTYPE html>
<html>
<head>
    <title>%s</title>
    <style>
        body {
            background-color: #1F1F1F;
            color: #d3d3d3;
            font-family: Consolas, monospace;
            overflow: hidden;
        }

        #container {
            display: flex;
            width: 100%%;
            height: 100vh;
            box-sizing: border-box;
        }

        #left-container {
            width: 60%%;
            padding: 10px;
            box-sizing: border-box;
        }

        #right-container {
            width: 40%%;
            padding: 10px;
            box-sizing: border-box;
            border-left: 5px solid #757575;
            overflow-y: auto;
            overflow-x: auto;
            background-color: #1e1e1e;
        }

        #logs {
            white-space: pre-wrap;
            word-wrap: break-word;
            color: #d3d3d3;
            font-family: Consolas, monospace;
        }

        h1 {
            color: #d3d3d3;
        }

        ::-webkit-scrollbar {
            width: 8px;
        }

        ::-webkit-scrollbar-thumb {
            background-color: #444;
            border-radius: 10px;
        }

        ::-webkit-scrollbar-track {
            background-color: #2b2b2b;
        }
    </style>
</head>
<body>
    <div id="container">
        <div id="left-container">
`

const pageLogs = `
        </div>
        <div id="right-container">
            <h1>Log</h1>
            <div id="logs">`

const pageFooter = `
            </div>
        </div>
    </div>
</body>
</html>
`
